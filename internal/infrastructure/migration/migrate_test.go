package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"assetregistry/internal/config"
)

type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.State.DatabaseURI = "postgres://localhost/registry"
	cfg.State.Migrations = "migrations"
	return cfg
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	engine := func(source, db string) (Migrator, error) {
		assert.Equal(t, "file://migrations", source)
		assert.Equal(t, "postgres://localhost/registry", db)
		return mockM, nil
	}

	mg := New(testConfig(), engine)
	err := mg.Up()

	assert.NoError(t, err)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// A database already at the latest version is not an error.
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(source, db string) (Migrator, error) {
		return mockM, nil
	}

	mg := New(testConfig(), engine)
	err := mg.Up()

	assert.NoError(t, err)
}

func TestMigration_Up_EngineError(t *testing.T) {
	engine := func(source, db string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	mg := New(testConfig(), engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_Up_UpError(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("dirty database"))
	mockM.On("Close").Return(nil, nil)

	engine := func(source, db string) (Migrator, error) {
		return mockM, nil
	}

	mg := New(testConfig(), engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dirty database")
}

func TestMigration_Up_CloseErrorsMerged(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(errors.New("source close failed"), nil)

	engine := func(source, db string) (Migrator, error) {
		return mockM, nil
	}

	mg := New(testConfig(), engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "source close failed")
}
