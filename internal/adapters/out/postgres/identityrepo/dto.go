// Package identityrepo reads the account tables owned by the authentication
// service. The order core never writes them.
package identityrepo

// UserDTO maps the columns of the users table that the order core reads.
type UserDTO struct {
	ID       string `gorm:"type:varchar(64);primaryKey"`
	Username string `gorm:"type:varchar(128);not null;uniqueIndex"`
	Email    string `gorm:"type:varchar(320);not null;uniqueIndex"`
	Role     string `gorm:"type:varchar(16);not null;default:user"`
}

// TableName specifies the database table name for user accounts.
func (UserDTO) TableName() string {
	return "users"
}

// BuffetDTO maps the columns of the buffets table that the order core reads.
type BuffetDTO struct {
	ID    string `gorm:"type:varchar(64);primaryKey"`
	Name  string `gorm:"type:varchar(128);not null"`
	Email string `gorm:"type:varchar(320);not null"`
}

// TableName specifies the database table name for buffet accounts.
func (BuffetDTO) TableName() string {
	return "buffets"
}
