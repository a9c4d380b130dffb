package cmd

import (
	"github.com/fant-market/client/config"
	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/internal/guard"
	"github.com/fant-market/client/internal/services"
	"github.com/fant-market/client/internal/session"
	"github.com/fant-market/client/internal/store"
	"github.com/fant-market/client/internal/ws"
	"github.com/spf13/cobra"
)

// app wires the client stack for one command invocation: config,
// persisted session, the shared HTTP client, the messaging client, and
// the services on top of them.
type app struct {
	cfg     config.Config
	session *session.Store
	socket  *ws.Client

	items      *services.ItemService
	bids       *services.BidService
	favorites  *services.FavoriteService
	categories *services.CategoryService
	images     *services.ImageService
	users      *services.UserService
	recs       *services.RecommendationService
	messages   *services.MessageService
}

func newApp() *app {
	cfg := config.LoadConfig()

	sess := session.NewStore(store.NewCredentialStore(cfg.CredentialFile))
	client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout, sess)
	sess.UseClient(client)

	socket := ws.NewClient(cfg.SocketURL, sess, nil)

	return &app{
		cfg:        cfg,
		session:    sess,
		socket:     socket,
		items:      services.NewItemService(client),
		bids:       services.NewBidService(client),
		favorites:  services.NewFavoriteService(client),
		categories: services.NewCategoryService(client),
		images:     services.NewImageService(client),
		users:      services.NewUserService(client),
		recs:       services.NewRecommendationService(client),
		messages:   services.NewMessageService(client, sess, socket),
	}
}

// requireAuth is the PreRunE for commands that need a session.
func requireAuth(cmd *cobra.Command, args []string) error {
	return guard.RequireAuth(newApp().session)
}

// requireAdmin is the PreRunE for admin-panel commands.
func requireAdmin(cmd *cobra.Command, args []string) error {
	return guard.RequireAdmin(newApp().session)
}
