/*
Quoter implements the two-leg quoting strategy over a future and the ETF
tracking it.

# Module
  - book tracking: keeps the latest top-two snapshot per instrument
  - cancel sweep: pulls resting quotes that stopped being profitable or competitive
  - quoting policy: arbitrage entries and inventory unwinds, bounded per side
  - hedge policy: offsets every ETF fill in the future leg at once

# Source
 1. order book & trade tick events from the market data feed
 2. order status / fill / error events from the order gateway

# Produce
  - insert, cancel and hedge commands to the order gateway

# Sharded
  - none: one engine instance, handlers serialized by the event dispatch
*/
package quoter
