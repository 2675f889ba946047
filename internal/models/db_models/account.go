package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"default:user"` // "user" | "admin"

	Trips []Trip `gorm:"foreignKey:OwnerID"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == "admin"
}
