package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"merobooking/internal/domains/room/model"
	"merobooking/shared"
	gDto "merobooking/shared/dto"
	gModel "merobooking/shared/model"
	"merobooking/shared/timezone"
)

type CreateRoomRequest struct {
	Name          string                `json:"name"            validate:"required,max=100"`
	Description   string                `json:"description"     validate:"omitempty,max=1000"`
	PricePerNight int64                 `json:"price_per_night" validate:"required,min=1"`
	Capacity      int                   `json:"capacity"        validate:"required,min=1"`
	TotalStock    int                   `json:"total_stock"     validate:"min=0"`
	FacilityIDs   []string              `json:"facility_ids"    validate:"omitempty,dive,required"`
	Image         *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	return model.Room{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Description:   c.Description,
		PricePerNight: c.PricePerNight,
		Capacity:      c.Capacity,
		TotalStock:    c.TotalStock,
		FacilityIDs:   pq.StringArray(c.FacilityIDs),
		Image:         imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name          string                `db:"name"            json:"name"            validate:"omitempty,max=100"`
	Description   string                `db:"description"     json:"description"     validate:"omitempty,max=1000"`
	PricePerNight *int64                `db:"price_per_night" json:"price_per_night" validate:"omitempty,min=1"`
	Capacity      *int                  `db:"capacity"        json:"capacity"        validate:"omitempty,min=1"`
	TotalStock    *int                  `db:"total_stock"     json:"total_stock"     validate:"omitempty,min=0"`
	FacilityIDs   pq.StringArray        `db:"facility_ids"    json:"facility_ids"    validate:"omitempty,dive,required"`
	Image         *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PricePerNight int64    `json:"price_per_night"`
	Capacity      int      `json:"capacity"`
	TotalStock    int      `json:"total_stock"`
	FacilityIDs   []string `json:"facility_ids"`
	Image         string   `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.PricePerNight = model.PricePerNight
	r.Capacity = model.Capacity
	r.TotalStock = model.TotalStock
	r.FacilityIDs = model.FacilityIDs
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
