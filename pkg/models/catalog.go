package models

// AssetSlot names one of the fixed image slots every record carries.
type AssetSlot string

const (
	FrontDefault     AssetSlot = "front_default"
	FrontFemale      AssetSlot = "front_female"
	FrontShiny       AssetSlot = "front_shiny"
	FrontShinyFemale AssetSlot = "front_shiny_female"
	BackDefault      AssetSlot = "back_default"
	BackFemale       AssetSlot = "back_female"
	BackShiny        AssetSlot = "back_shiny"
	BackShinyFemale  AssetSlot = "back_shiny_female"
)

// AssetSlots lists the slots in their canonical order.
var AssetSlots = []AssetSlot{
	FrontDefault,
	FrontFemale,
	FrontShiny,
	FrontShinyFemale,
	BackDefault,
	BackFemale,
	BackShiny,
	BackShinyFemale,
}

// Assets maps every slot to a URL, a local reference, or nil.
// A well-formed value always has exactly len(AssetSlots) keys.
type Assets map[AssetSlot]*string

// NewAssets returns an Assets value with every slot present and nil.
func NewAssets() Assets {
	a := make(Assets, len(AssetSlots))
	for _, s := range AssetSlots {
		a[s] = nil
	}
	return a
}

// Get returns the slot value or nil; unknown slots are nil too.
func (a Assets) Get(slot AssetSlot) *string {
	if a == nil {
		return nil
	}
	return a[slot]
}

// CatalogRecord is the normalized, internal form of an upstream entry.
// JSON tags follow the stored column format.
type CatalogRecord struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Categories       []Category        `json:"types"`
	HeightUnits      int               `json:"height"`
	WeightUnits      int               `json:"weight"`
	OrderRank        int               `json:"order"`
	LineageName      *string           `json:"species"`
	VariantName      *string           `json:"form"`
	Assets           Assets            `json:"sprites"`
	Attributes       []Attribute       `json:"stats"`
	Traits           []Trait           `json:"abilities"`
	LearnableActions []LearnableAction `json:"moves"`
}

type Category struct {
	Category string `json:"type"`
	Slot     int    `json:"slot"`
}

type Attribute struct {
	Attribute string `json:"stat"`
	BaseValue int    `json:"base_stat"`
	Effort    int    `json:"effort"`
}

type Trait struct {
	Trait    string `json:"ability"`
	IsHidden bool   `json:"is_hidden"`
	Slot     int    `json:"slot"`
}

type LearnableAction struct {
	Action             string              `json:"move"`
	AcquisitionDetails []AcquisitionDetail `json:"version_group_details"`
}

type AcquisitionDetail struct {
	LevelAcquired int    `json:"level_learned_at"`
	Method        string `json:"move_learn_method"`
	ContextGroup  string `json:"version_group"`
}

// SummarySprites is the single image a list view needs.
type SummarySprites struct {
	FrontDefault *string `json:"front_default"`
}

// CatalogRecordSummary is the narrowed projection used by list and search.
type CatalogRecordSummary struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Categories []Category     `json:"types"`
	Sprites    SummarySprites `json:"sprites"`
}

// Summary projects the record down to its list-view fields.
func (r CatalogRecord) Summary() CatalogRecordSummary {
	cats := r.Categories
	if cats == nil {
		cats = []Category{}
	}
	return CatalogRecordSummary{
		ID:         r.ID,
		Name:       r.Name,
		Categories: cats,
		Sprites:    SummarySprites{FrontDefault: r.Assets.Get(FrontDefault)},
	}
}
