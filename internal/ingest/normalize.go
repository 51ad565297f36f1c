// Package ingest turns raw upstream catalog entries into normalized
// records and writes them to the catalog store, one at a time (import)
// or as a full reseed from a file.
package ingest

import "pokedex/pkg/models"

// Normalize maps a raw upstream record onto the internal schema. It has no
// side effects and never fails: absent arrays become empty sequences and
// absent optional blocks become nil. Input order is preserved everywhere.
func Normalize(raw models.UpstreamRecord) models.CatalogRecord {
	rec := models.CatalogRecord{
		ID:               raw.ID,
		Name:             raw.Name,
		HeightUnits:      raw.Height,
		WeightUnits:      raw.Weight,
		OrderRank:        raw.Order,
		Categories:       make([]models.Category, 0, len(raw.Types)),
		Attributes:       make([]models.Attribute, 0, len(raw.Stats)),
		Traits:           make([]models.Trait, 0, len(raw.Abilities)),
		LearnableActions: make([]models.LearnableAction, 0, len(raw.Moves)),
		Assets:           normalizeAssets(raw.Sprites),
	}

	for _, t := range raw.Types {
		rec.Categories = append(rec.Categories, models.Category{Category: t.Type.Name, Slot: t.Slot})
	}
	for _, s := range raw.Stats {
		rec.Attributes = append(rec.Attributes, models.Attribute{
			Attribute: s.Stat.Name,
			BaseValue: s.BaseStat,
			Effort:    s.Effort,
		})
	}
	for _, a := range raw.Abilities {
		rec.Traits = append(rec.Traits, models.Trait{Trait: a.Ability.Name, IsHidden: a.IsHidden, Slot: a.Slot})
	}
	for _, m := range raw.Moves {
		details := make([]models.AcquisitionDetail, 0, len(m.VersionGroupDetails))
		for _, d := range m.VersionGroupDetails {
			details = append(details, models.AcquisitionDetail{
				LevelAcquired: d.LevelLearnedAt,
				Method:        d.MoveLearnMethod.Name,
				ContextGroup:  d.VersionGroup.Name,
			})
		}
		rec.LearnableActions = append(rec.LearnableActions, models.LearnableAction{
			Action:             m.Move.Name,
			AcquisitionDetails: details,
		})
	}

	if raw.Species != nil {
		rec.LineageName = optional(raw.Species.Name)
	}
	if len(raw.Forms) > 0 {
		rec.VariantName = optional(raw.Forms[0].Name)
	}
	return rec
}

// normalizeAssets copies the known slots; non-string values and unknown
// keys (the nested "other"/"versions" blocks) are dropped.
func normalizeAssets(sprites map[string]any) models.Assets {
	out := models.NewAssets()
	for _, slot := range models.AssetSlots {
		if s, ok := sprites[string(slot)].(string); ok && s != "" {
			out[slot] = &s
		}
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
