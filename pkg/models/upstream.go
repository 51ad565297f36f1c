package models

// NamedResource is the {name, url} reference the upstream API uses for
// every linked entity. Only Name survives normalization.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// UpstreamRecord is one raw entry from the third-party catalog API
// (GET {base}/pokemon/{idOrName}), decoded as-is.
type UpstreamRecord struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Height    int               `json:"height"`
	Weight    int               `json:"weight"`
	Order     int               `json:"order"`
	Sprites   map[string]any    `json:"sprites"` // 8 known string|null keys plus nested "other"/"versions" blobs
	Types     []UpstreamType    `json:"types"`
	Abilities []UpstreamAbility `json:"abilities"`
	Moves     []UpstreamMove    `json:"moves"`
	Stats     []UpstreamStat    `json:"stats"`
	Species   *NamedResource    `json:"species,omitempty"`
	Forms     []NamedResource   `json:"forms"`
}

type UpstreamType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type UpstreamAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type UpstreamMove struct {
	Move                NamedResource                `json:"move"`
	VersionGroupDetails []UpstreamVersionGroupDetail `json:"version_group_details"`
}

type UpstreamVersionGroupDetail struct {
	LevelLearnedAt  int           `json:"level_learned_at"`
	MoveLearnMethod NamedResource `json:"move_learn_method"`
	VersionGroup    NamedResource `json:"version_group"`
}

type UpstreamStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}
