package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Messages *MessageRepository
	Cycles   *CycleRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Messages: NewMessageRepository(database),
		Cycles:   NewCycleRepository(database),
	}
}
