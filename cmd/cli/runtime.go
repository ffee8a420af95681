package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/priorlabs/tabpfn-cli/internal/auth"
	"github.com/priorlabs/tabpfn-cli/internal/client"
	"github.com/priorlabs/tabpfn-cli/internal/common"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/sessions"
	"github.com/priorlabs/tabpfn-cli/internal/store"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/priorlabs/tabpfn-cli/internal/wizard"
	"github.com/sirupsen/logrus"
)

// runtime is every collaborator a command needs, built from the loaded config.
type runtime struct {
	service   *client.ServiceClient
	auth      *auth.UserAuthenticationClient
	terminal  *ui.Terminal
	bootstrap *sessions.Bootstrap
	trainSets *store.TrainSetCache
}

func newRuntime() *runtime {

	service := client.NewServiceClient(cfg.ClientOptions())
	tokens := store.NewTokenCache(cfg.GetCacheDir())
	authClient := auth.NewUserAuthenticationClient(service, tokens)
	terminal := ui.NewTerminal()

	onboarding := wizard.New(
		authClient,
		store.NewRegistrationStore(cfg.GetRegistrationDir()),
		terminal,
		cfg.GetValidationLink(),
	)

	return &runtime{
		service:   service,
		auth:      authClient,
		terminal:  terminal,
		bootstrap: sessions.NewBootstrap(authClient, onboarding, terminal, cfg.GetCacheDir()),
		trainSets: store.NewTrainSetCache(cfg.GetCacheDir()),
	}
}

// withRuntime runs fn with an interrupt aware context.
func withRuntime(fn func(ctx context.Context, rt *runtime) error) error {
	ctx, cleanup := common.WithInterrupt(context.Background())
	defer cleanup()

	return fn(ctx, newRuntime())
}

// session returns an initialised session, running the login wizard if
// there is no usable token. A configured access token skips all prompting.
func (rt *runtime) session(ctx context.Context) (models.Session, error) {

	s := models.Session{}

	if cfg.HasAccessToken() {
		logrus.Debugln("Using access token from configuration")
		return rt.bootstrap.SetAccessToken(s, cfg.AccessToken), nil
	}

	s, err := rt.bootstrap.Init(ctx, s, true)
	if err != nil {
		return s, err
	}

	if err := ctx.Err(); err != nil {
		return s, fmt.Errorf("%w: %w", ui.ErrInterrupted, err)
	}

	if !s.IsReady() {
		return s, client.ErrNotAuthorized
	}

	return s, nil
}

// status shows a spinner while fn runs.
func (rt *runtime) status(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	err := rt.terminal.Status(ctx, title, fn)
	if err != nil && !errors.Is(err, ui.ErrInterrupted) {
		return fmt.Errorf("%s: %w", title, err)
	}
	return err
}
