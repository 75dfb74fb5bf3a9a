package dto

import (
	"roomly/internal/domains/favorite/model"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"time"
)

const (
	MessageAdded   = "Added to favorites"
	MessageRemoved = "Removed from favorites"
)

type ToggleFavoriteRequest struct {
	UserID *int64 `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	RoomID int64  `json:"room_id"           validate:"required,gt=0"`
}

// OwnerID resolves whose favorites are toggled. Admins may act for another user.
func (r *ToggleFavoriteRequest) OwnerID(actorID int64, role string) int64 {
	if role == constant.RoleAdmin && r.UserID != nil {
		return *r.UserID
	}

	return actorID
}

func (r *ToggleFavoriteRequest) ToModel(userID int64, now time.Time) model.Favorite {
	return model.Favorite{
		UserID:    userID,
		RoomID:    r.RoomID,
		CreatedAt: now,
	}
}

type ToggleFavoriteResponse struct {
	IsFavorite bool   `json:"is_favorite"`
	Message    string `json:"message"`
}

func NewToggleFavoriteResponse(isFavorite bool) ToggleFavoriteResponse {
	if isFavorite {
		return ToggleFavoriteResponse{IsFavorite: true, Message: MessageAdded}
	}

	return ToggleFavoriteResponse{IsFavorite: false, Message: MessageRemoved}
}

type FavoriteLocation struct {
	ID           int64   `json:"id"`
	LocationName string  `json:"location_name"`
	Province     *string `json:"province"`
}

type FavoriteRoom struct {
	ID            int64            `json:"id"`
	RoomName      string           `json:"room_name"`
	GuestCount    int              `json:"guest_count"`
	BedroomCount  int              `json:"bedroom_count"`
	BedCount      int              `json:"bed_count"`
	BathroomCount int              `json:"bathroom_count"`
	Description   *string          `json:"description"`
	Price         int64            `json:"price"`
	Image         *string          `json:"image"`
	Location      FavoriteLocation `json:"location"`
}

type FavoriteResponse struct {
	ID     int64        `json:"id"`
	UserID int64        `json:"user_id"`
	RoomID int64        `json:"room_id"`
	Room   FavoriteRoom `json:"room"`
}

func (r *FavoriteResponse) FromModel(detail model.FavoriteDetail) {
	r.ID = detail.ID
	r.UserID = detail.UserID
	r.RoomID = detail.RoomID
	r.Room = FavoriteRoom{
		ID:            detail.RoomID,
		RoomName:      detail.RoomName,
		GuestCount:    detail.GuestCount,
		BedroomCount:  detail.BedroomCount,
		BedCount:      detail.BedCount,
		BathroomCount: detail.BathroomCount,
		Description:   detail.Description,
		Price:         detail.Price,
		Image:         detail.Image,
		Location: FavoriteLocation{
			ID:           detail.LocationID,
			LocationName: detail.LocationName,
			Province:     detail.Province,
		},
	}
}

type GetFavoritesResponse struct {
	gDto.Pagination
	Items []FavoriteResponse `json:"items"`
}

func (r *GetFavoritesResponse) FromModels(models []model.FavoriteDetail, total int, params gDto.QueryParams) {
	r.Page = params.Page
	r.PageSize = params.Limit
	r.TotalItem = total
	r.TotalPage = shared.CalculateTotalPage(total, params.Limit)

	r.Items = make([]FavoriteResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type FavoriteStatusResponse struct {
	UserID     int64 `json:"user_id"`
	RoomID     int64 `json:"room_id"`
	IsFavorite bool  `json:"is_favorite"`
}
