package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/adapters/driven/config/file"
	"github.com/mukesh2006/medic/internal/adapters/driven/locale"
	"github.com/mukesh2006/medic/internal/adapters/driven/storage/memory"
	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/services"
	"github.com/mukesh2006/medic/internal/textforms"
)

const msbbMessage = "1!MSBB!2012#1#24#abcdef#1111#bbbbbb#22#15#cccccc"

// testEnv holds the backing store of the services installed by setupTestServices.
type testEnv struct {
	store *memory.DocumentStore
}

// setupTestServices installs real services over an in-memory store and
// returns a function restoring the previous globals and flag values.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()

	catalog, err := file.LoadFormCatalog("")
	require.NoError(t, err)
	loc, err := locale.New()
	require.NoError(t, err)

	store := memory.NewDocumentStore()
	parser := textforms.NewParser(catalog, loc, "en")
	resolver := services.NewFacilityResolver(store, catalog, loc, "fr")

	prev := Services{
		Intake:   intakeService,
		Contacts: contactService,
		Settings: settingsService,
		Forms:    formSource,
		Gatherer: gatherer,
	}
	SetServices(Services{
		Intake:   services.NewIntakeService(parser, resolver, store, nil, time.Second),
		Contacts: services.NewContactService(store),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
		Forms:    catalog,
	})

	return &testEnv{store: store}, func() {
		SetServices(prev)
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetContext(context.Background())
	}
}

// clearServices removes all services and returns a restore function.
func clearServices() func() {
	prev := Services{
		Intake:   intakeService,
		Contacts: contactService,
		Settings: settingsService,
		Forms:    formSource,
		Gatherer: gatherer,
	}
	SetServices(Services{})
	return func() { SetServices(prev) }
}

func resetFlags() {
	smsFrom, smsSentTimestamp, smsDryRun, smsJSON = "", "", false, false
	recordJSON = false
	contactID, contactType, contactFile, contactListDead = "", "", "", false
	serveAddr = ""
	mcpPort, mcpHost = 0, "127.0.0.1"
	versionJSON = false
}

func seedClinic(t *testing.T, store *memory.DocumentStore) {
	t.Helper()
	doc, err := domain.NewDocument(&domain.Contact{
		ID:      "clinic",
		Type:    domain.TypeClinic,
		Name:    "Clinic",
		Phone:   "+13125551212",
		Contact: &domain.Contact{ID: "nurse", Name: "Nurse", Phone: "+3000"},
	})
	require.NoError(t, err)
	results, err := store.BulkWrite(context.Background(), []domain.Document{doc})
	require.NoError(t, err)
	require.True(t, results[0].OK)
}
