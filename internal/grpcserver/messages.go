package grpcserver

import "pokedex/pkg/models"

type ListRecordsRequest struct {
	Sort   string `json:"sort,omitempty"`
	Limit  *int   `json:"limit,omitempty"`
	Offset *int   `json:"offset,omitempty"`
}

type ListRecordsResponse struct {
	Total int                           `json:"total"`
	Items []models.CatalogRecordSummary `json:"items"`
}

type GetRecordRequest struct {
	ID int `json:"id"`
}

type GetRecordResponse struct {
	Record *models.CatalogRecord `json:"record"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

type SearchResponse struct {
	Items []models.CatalogRecordSummary `json:"items"`
}

type CreateRosterRequest struct {
	Name string `json:"name"`
}

type GetRosterRequest struct {
	ID int64 `json:"id"`
}

type ListRostersRequest struct {
	Search string `json:"search,omitempty"`
	Limit  *int   `json:"limit,omitempty"`
	Offset *int   `json:"offset,omitempty"`
}

type ListRostersResponse struct {
	Items []models.Roster `json:"items"`
}

type SetMembersRequest struct {
	ID      int64 `json:"id"`
	Members []int `json:"members"`
}

type RosterResponse struct {
	Roster *models.Roster `json:"roster"`
}
