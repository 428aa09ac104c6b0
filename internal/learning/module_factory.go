package learning

import (
	"fmt"

	"lpg-management/internal/dates"
)

type moduleBuilder func(base ModuleBase, data map[string]any) (Module, error)

var moduleBuilders = map[ModuleType]moduleBuilder{
	ModuleTypeVideo:      buildVideoModule,
	ModuleTypeLink:       buildLinkModule,
	ModuleTypeFile:       buildFileModule,
	ModuleTypeELearning:  buildELearningModule,
	ModuleTypeFaceToFace: buildFaceToFaceModule,
}

// ModuleFactory builds the Module variant selected by data["type"].
type ModuleFactory struct{}

func (f ModuleFactory) Create(data map[string]any) (Module, error) {
	typ := getString(data, "type")
	build, ok := moduleBuilders[ModuleType(typ)]
	if !ok {
		return nil, constructionError("module", typ, data, ErrUnknownModuleType)
	}

	base, err := defaultCreate(ModuleType(typ), data)
	if err != nil {
		return nil, constructionError("module", typ, data, err)
	}
	m, err := build(base, data)
	if err != nil {
		return nil, constructionError("module", typ, data, err)
	}
	return m, nil
}

func defaultCreate(typ ModuleType, data map[string]any) (ModuleBase, error) {
	duration, bad := moduleDuration(data)
	optional, _ := getBool(data, "optional")

	base := ModuleBase{
		ID:                getString(data, "id"),
		Type:              typ,
		Title:             getString(data, "title"),
		Description:       getString(data, "description"),
		Duration:          duration,
		FormattedDuration: dates.FormatDuration(duration),
		Cost:              parseCost(data["cost"]),
		Optional:          optional,
		badDuration:       bad,
	}

	rawAudiences, err := getList(data, "audiences")
	if err != nil {
		return base, err
	}
	for _, ra := range rawAudiences {
		a, err := AudienceFactory{}.Create(ra)
		if err != nil {
			return base, err
		}
		base.Audiences = append(base.Audiences, a)
	}
	return base, nil
}

// moduleDuration reads seconds, accepting a number, a numeric string or an ISO-8601 duration.
// Anything else yields 0 plus the raw text, so validation can report it.
func moduleDuration(data map[string]any) (int, string) {
	if n, ok := getInt(data, "duration"); ok {
		return n, ""
	}
	raw := getString(data, "duration")
	if raw == "" {
		return 0, ""
	}
	if n, ok := dates.ParseDuration(raw); ok {
		return n, ""
	}
	return 0, raw
}

func buildVideoModule(base ModuleBase, data map[string]any) (Module, error) {
	return &VideoModule{
		ModuleBase: base,
		Location:   getString(data, "location", "url"),
	}, nil
}

func buildLinkModule(base ModuleBase, data map[string]any) (Module, error) {
	isOptional, ok := getBool(data, "isOptional")
	if !ok {
		isOptional = base.Optional
	}
	return &LinkModule{
		ModuleBase: base,
		URL:        getString(data, "url", "location"),
		IsOptional: isOptional,
	}, nil
}

func buildFileModule(base ModuleBase, data map[string]any) (Module, error) {
	size, _ := getInt(data, "fileSize")
	return &FileModule{
		ModuleBase: base,
		URL:        getString(data, "url"),
		FileSize:   size,
	}, nil
}

func buildELearningModule(base ModuleBase, data map[string]any) (Module, error) {
	return &ELearningModule{
		ModuleBase: base,
		StartPage:  getString(data, "startPage"),
	}, nil
}

func buildFaceToFaceModule(base ModuleBase, data map[string]any) (Module, error) {
	rawEvents, err := getList(data, "events")
	if err != nil {
		return nil, err
	}

	events := make([]*Event, 0, len(rawEvents))
	for i, re := range rawEvents {
		e, err := EventFactory{}.Create(re)
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		events = append(events, e)
	}

	return &FaceToFaceModule{
		ModuleBase:  base,
		ProductCode: getString(data, "productCode"),
		Events:      events,
	}, nil
}
