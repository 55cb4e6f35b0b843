package app

import (
	"github.com/coachkit/huddle/internal/adapters/repository"
	"github.com/coachkit/huddle/pkg/logger"
)

func testLogger() logger.Logger {
	_ = logger.Init()
	return logger.Get()
}

func newEmptyStore() repository.Store {
	return repository.NewMemStore()
}
