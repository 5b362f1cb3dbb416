package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/media"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
				return petDomain.IsValidContactNumber(fl.Field().String())
			})
		}
	})
}

// CreatePetForm is the multipart upload form. Required-ness of the contact
// fields depends on the path and is checked by the domain.
type CreatePetForm struct {
	Name          string                `form:"name" binding:"required,max=100"`
	Type          string                `form:"type" binding:"required,max=50"`
	Age           string                `form:"age" binding:"required,max=50"`
	Health        string                `form:"health" binding:"max=500"`
	Inoculations  string                `form:"inoculations" binding:"max=500"`
	Habits        string                `form:"habits" binding:"max=1000"`
	ContactNumber string                `form:"contactNumber" binding:"omitempty,phone"`
	EmailAddress  string                `form:"emailAddress" binding:"omitempty,email"`
	ListingMode   string                `form:"listingMode" binding:"omitempty,oneof=free selling"`
	Price         string                `form:"price"`
	Image         *multipart.FileHeader `form:"image"`
}

func (f CreatePetForm) toUpload() (application.ListingUpload, error) {
	up := application.ListingUpload{
		Fields: petDomain.NewPetInput{
			Name:          f.Name,
			Type:          f.Type,
			Age:           f.Age,
			Health:        f.Health,
			Inoculations:  f.Inoculations,
			Habits:        f.Habits,
			ContactNumber: f.ContactNumber,
			EmailAddress:  f.EmailAddress,
			ListingMode:   f.ListingMode,
			Price:         f.Price,
		},
	}
	if f.Image == nil {
		return up, nil
	}

	data, mimeType, err := readImage(f.Image)
	if err != nil {
		return up, err
	}
	up.Image = data
	up.ImageMimeType = mimeType
	return up, nil
}

func readImage(fh *multipart.FileHeader) ([]byte, string, error) {
	if fh.Size > media.MaxImageBytes {
		return nil, "", fmt.Errorf("image is larger than 10 MB")
	}
	file, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, media.MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, nil
}

func bindListing(c *gin.Context) (application.ListingUpload, bool) {
	var form CreatePetForm
	if err := c.ShouldBind(&form); err != nil {
		abortBadRequest(c, err)
		return application.ListingUpload{}, false
	}
	up, err := form.toUpload()
	if err != nil {
		abortBadRequest(c, err)
		return application.ListingUpload{}, false
	}
	return up, true
}
