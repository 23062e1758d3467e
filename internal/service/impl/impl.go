package impl

import (
	"codeberg.org/gruf/go-mutexes"
	"github.com/sidereusnuntius/gofinger/internal/db"
	"github.com/sidereusnuntius/gofinger/internal/service"
)

type DirectoryService struct {
	DB db.DB
	// locks serializes read-modify-write cycles on a single subject.
	locks *mutexes.MutexMap
}

func New(DB db.DB) service.Directory {
	locks := mutexes.MutexMap{}
	return &DirectoryService{
		DB:    DB,
		locks: &locks,
	}
}
