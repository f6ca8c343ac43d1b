package payload

import (
	"math"
	"strconv"

	"github.com/goliatone/go-predictform/pkg/form"
	"github.com/goliatone/go-predictform/pkg/model"
)

// PriceRequest is the JSON body of a price prediction. Pointer fields encode
// as null when the corresponding selection was never made.
type PriceRequest struct {
	RAMCapacity     *float64 `json:"ram_capacity"`
	InternalMemory  *float64 `json:"internal_memory"`
	ProcessorSpeed  *float64 `json:"processor_speed"`
	ScreenSize      *float64 `json:"screen_size"`
	BatteryCapacity *float64 `json:"battery_capacity"`
	NumCores        *int64   `json:"num_cores"`
	Has5G           int      `json:"has_5g"`
	RefreshRate     *float64 `json:"refresh_rate"`
}

// Price maps a smartphone specification state onto a PriceRequest. Unset or
// unparsable selections become nil rather than being rejected here; callers
// decide whether to send an incomplete request.
func Price(state form.State) PriceRequest {
	return PriceRequest{
		RAMCapacity:     floatField(state, "ram_capacity"),
		InternalMemory:  floatField(state, "internal_memory"),
		ProcessorSpeed:  floatField(state, "processor_speed"),
		ScreenSize:      floatField(state, "screen_size"),
		BatteryCapacity: floatField(state, "battery_capacity"),
		NumCores:        intField(state, "num_cores"),
		Has5G:           flagValue(state.Flag("has_5g")),
		RefreshRate:     floatField(state, "refresh_rate"),
	}
}

// Finite reports whether every numeric field is set to a finite number.
func (r PriceRequest) Finite() bool {
	for _, v := range []*float64{r.RAMCapacity, r.InternalMemory, r.ProcessorSpeed, r.ScreenSize, r.BatteryCapacity, r.RefreshRate} {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return false
		}
	}
	return r.NumCores != nil && (r.Has5G == 0 || r.Has5G == 1)
}

// Coerce converts every field of state according to its declared type:
// numbers to float64, integers to int64, booleans to 0/1. Unset or
// unparsable values map to nil so the key is still present on the wire.
func Coerce(state form.State) map[string]any {
	definition := state.Form()
	out := make(map[string]any, len(definition.Fields))
	for _, field := range definition.Fields {
		switch field.Type {
		case model.FieldTypeNumber:
			if v := floatField(state, field.Name); v != nil {
				out[field.Name] = *v
			} else {
				out[field.Name] = nil
			}
		case model.FieldTypeInteger:
			if v := intField(state, field.Name); v != nil {
				out[field.Name] = *v
			} else {
				out[field.Name] = nil
			}
		case model.FieldTypeBoolean:
			out[field.Name] = flagValue(state.Flag(field.Name))
		}
	}
	return out
}

func floatField(state form.State, name string) *float64 {
	raw, ok := state.Option(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func intField(state form.State, name string) *int64 {
	raw, ok := state.Option(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func flagValue(b bool) int {
	if b {
		return 1
	}
	return 0
}
