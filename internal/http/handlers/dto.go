package handlers

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), validation.Match(emailRx)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
	)
}

type registerResponse struct {
	ID int64 `json:"id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refreshRequest — тело /token и /logout. Поле token — устаревшее имя
// refreshToken, принимается для старых клиентов.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	Token        string `json:"token"`
}

func (r refreshRequest) value() string {
	if r.RefreshToken != "" {
		return r.RefreshToken
	}

	return r.Token
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// profileRequest принимает и snake_case имена полей (course_id,
// university_id, role_id), которые шлют старые клиенты.
type profileRequest struct {
	CourseID     *int64   `json:"courseId"`
	UniversityID *int64   `json:"universityId"`
	RoleID       *int64   `json:"roleId"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`

	LegacyCourseID     *int64 `json:"course_id"`
	LegacyUniversityID *int64 `json:"university_id"`
	LegacyRoleID       *int64 `json:"role_id"`
}

// normalize переносит snake_case значения в основные поля, если те пусты.
func (r *profileRequest) normalize() {
	r.CourseID = firstSet(r.CourseID, r.LegacyCourseID)
	r.UniversityID = firstSet(r.UniversityID, r.LegacyUniversityID)
	r.RoleID = firstSet(r.RoleID, r.LegacyRoleID)
}

func firstSet(primary, legacy *int64) *int64 {
	if primary != nil {
		return primary
	}

	return legacy
}

func (r profileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CourseID, validation.Min(int64(1))),
		validation.Field(&r.UniversityID, validation.Min(int64(1))),
		validation.Field(&r.RoleID, validation.Min(int64(1))),
		validation.Field(&r.Address, validation.Length(0, 500)),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

func (r profileRequest) toUpdate() storage.ProfileUpdate {
	return storage.ProfileUpdate{
		CourseID:     r.CourseID,
		UniversityID: r.UniversityID,
		RoleID:       r.RoleID,
		Address:      r.Address,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}
}

type userResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CourseID     *int64    `json:"courseId,omitempty"`
	UniversityID *int64    `json:"universityId,omitempty"`
	RoleID       *int64    `json:"roleId,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func userFromModel(u *models.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		CourseID:     u.Profile.CourseID,
		UniversityID: u.Profile.UniversityID,
		RoleID:       u.Profile.RoleID,
		Address:      u.Profile.Address,
		Latitude:     u.Profile.Latitude,
		Longitude:    u.Profile.Longitude,
		CreatedAt:    u.CreatedAt,
	}
}

// imageURLs проверяет каждый URL изображения.
type imageURLs []string

func (u imageURLs) Validate() error {
	for _, url := range u {
		if err := validation.Validate(url, validation.Required, is.URL); err != nil {
			return errors.New("each image must be a valid URL")
		}
	}

	return nil
}

type createResourceRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"categoryId"`
	StatusID    int64     `json:"statusId"`
	Price       *float64  `json:"price"`
	Images      imageURLs `json:"images"`

	LegacyCategoryID int64 `json:"category_id"`
	LegacyStatusID   int64 `json:"status_id"`
}

func (r *createResourceRequest) normalize() {
	if r.CategoryID == 0 {
		r.CategoryID = r.LegacyCategoryID
	}
	if r.StatusID == 0 {
		r.StatusID = r.LegacyStatusID
	}
}

func (r createResourceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.CategoryID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.StatusID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Images),
	)
}

type createResourceResponse struct {
	ResourceID int64 `json:"resourceId"`
}

type updateResourceRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	CategoryID  *int64     `json:"categoryId"`
	StatusID    *int64     `json:"statusId"`
	Price       *float64   `json:"price"`
	Images      *imageURLs `json:"images"`

	LegacyCategoryID *int64 `json:"category_id"`
	LegacyStatusID   *int64 `json:"status_id"`
}

func (r *updateResourceRequest) normalize() {
	r.CategoryID = firstSet(r.CategoryID, r.LegacyCategoryID)
	r.StatusID = firstSet(r.StatusID, r.LegacyStatusID)
}

func (r updateResourceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.CategoryID, validation.Min(int64(1))),
		validation.Field(&r.StatusID, validation.Min(int64(1))),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Images),
	)
}

type resourceResponse struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"categoryId"`
	StatusID    int64     `json:"statusId"`
	Price       *float64  `json:"price,omitempty"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func resourceFromModel(r *models.Resource) resourceResponse {
	images := r.Images
	if images == nil {
		images = []string{}
	}

	return resourceResponse{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		StatusID:    r.StatusID,
		Price:       r.Price,
		Images:      images,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type presignRequest struct {
	ContentType   string `json:"contentType"`
	ContentLength int64  `json:"contentLength"`
}

func (r presignRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ContentType, validation.Required),
		validation.Field(&r.ContentLength, validation.Required, validation.Min(int64(1))),
	)
}

type presignResponse struct {
	UploadURL      string            `json:"uploadUrl"`
	ObjectKey      string            `json:"objectKey"`
	PublicURL      string            `json:"publicUrl"`
	ExpiresSeconds int64             `json:"expiresSeconds"`
	RequiredHeader map[string]string `json:"requiredHeaders"`
}

type lookupResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	UniversityID *int64 `json:"universityId,omitempty"`
}
