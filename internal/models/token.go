package models

// TokenPair — пара токенов, выдаваемая при входе.
type TokenPair struct {
	// AccessToken — короткоживущий JWT для авторизации запросов.
	AccessToken string
	// RefreshToken — JWT для обмена на новый access-токен; действителен,
	// пока присутствует в реестре.
	RefreshToken string
}
