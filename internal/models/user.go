// models содержит доменные сущности сервиса маркетплейса.
// Типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// User — учётная запись (identity). Email уникален, PasswordHash — bcrypt-хэш.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
}

// Profile — дополнительные поля пользователя, заполняемые после регистрации.
// Все поля необязательные.
type Profile struct {
	CourseID     *int64
	UniversityID *int64
	RoleID       *int64
	Address      *string
	Latitude     *float64
	Longitude    *float64
}
