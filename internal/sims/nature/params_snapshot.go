package nature

import (
	"strconv"

	"nature-ca/internal/core"
)

// Parameters reports the tunables and live lattice figures for display.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("tick", "Tick", w.tick),
				intParam("w", "Width", w.grid.Width()),
				intParam("h", "Height", w.grid.Height()),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Evolution",
			Params: []core.Parameter{
				floatParam("spread_scale", "Spread scale", params.SpreadScale),
				floatParam("stay_weight", "Stay weight per candidate", params.StayWeight),
				stringParam("sweep", "Sweep", string(params.Sweep)),
			},
		},
		{
			Name: "Last Tick",
			Params: []core.Parameter{
				intParam("transitions", "Transitions", w.last.Transitions),
				intParam("spreads", "Spreads", w.last.Spreads),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'g', 4, 64)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}
