package schema

import "fmt"

// Scale is the number of decimal places used by a scaled integer.
// Example: Scale=2 means minor currency units (cents).
type Scale int32

// ScaleSpec defines scaling for common numeric fields.
type ScaleSpec struct {
	PriceScale  Scale `json:"priceScale"`
	VolumeScale Scale `json:"volumeScale"`
	FeeScale    Scale `json:"feeScale"`
}

// InstrumentInfo describes one tradable leg.
type InstrumentInfo struct {
	Instrument Instrument
	Name       string
	Scale      ScaleSpec
}

// Registry stores the leg descriptions in a compact form.
type Registry struct {
	infos  [InstrumentCount]InstrumentInfo
	set    [InstrumentCount]bool
	byName map[string]Instrument
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Instrument, InstrumentCount)}
}

// Register assigns a name and scale to an instrument slot.
func (r *Registry) Register(inst Instrument, name string, scale ScaleSpec) error {
	if !inst.Valid() {
		return fmt.Errorf("instrument is invalid: %d", inst)
	}
	if name == "" {
		return fmt.Errorf("instrument name is empty")
	}
	if r.set[inst] {
		return fmt.Errorf("instrument already registered: %s", inst)
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("instrument name already used: %s", name)
	}
	r.infos[inst] = InstrumentInfo{Instrument: inst, Name: name, Scale: scale}
	r.set[inst] = true
	r.byName[name] = inst
	return nil
}

// Info returns the description for an instrument.
func (r *Registry) Info(inst Instrument) (InstrumentInfo, bool) {
	if !inst.Valid() || !r.set[inst] {
		return InstrumentInfo{}, false
	}
	return r.infos[inst], true
}

// ByName returns the instrument for a name.
func (r *Registry) ByName(name string) (Instrument, bool) {
	inst, ok := r.byName[name]
	return inst, ok
}

// Count returns the number of registered instruments.
func (r *Registry) Count() int {
	n := 0
	for _, ok := range r.set {
		if ok {
			n++
		}
	}
	return n
}

// Complete reports whether both legs are registered.
func (r *Registry) Complete() bool {
	return r.Count() == InstrumentCount
}
