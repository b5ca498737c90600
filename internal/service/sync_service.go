package service

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"order-downloader/internal/client"
	"order-downloader/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// SyncService runs the download pipeline: list historical orders, fetch and
// persist each order's payload, derive the set of referenced product ids
// from the stored orders, then fetch and persist each product's payload.
type SyncService struct {
	client *client.Client
	dbPath string
}

// NewSyncService creates a new instance of SyncService. The database is not
// opened until Run decides there is work to do.
func NewSyncService(client *client.Client, dbPath string) *SyncService {
	return &SyncService{client: client, dbPath: dbPath}
}

// Run executes one full sync. Order-level failures abort the run; a
// non-success status on a single product fetch is reported and skipped.
// Upserts are idempotent, so an aborted run can simply be re-run.
func (s *SyncService) Run(ctx context.Context) error {
	history, err := s.client.ListOrderHistory(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing order history")
		return err
	}

	if history == nil || len(history.OrderHistory) == 0 {
		logger.Info().Msg("No historical orders to download")
		return nil
	}

	logger.Info().Msgf("Received %d orders", history.OfflineOrdersCount)

	store, err := repository.Open(s.dbPath)
	if err != nil {
		logger.Error().Err(err).Msgf("Error opening database %s", s.dbPath)
		return err
	}
	defer store.Close()

	for _, order := range history.OrderHistory {
		logger.Info().Msgf("Retrieving order ID %s", order.ID)

		body, err := s.client.FetchOrderDetail(ctx, order.ID)
		if err != nil {
			logger.Error().Err(err).Msgf("Error retrieving order %s", order.ID)
			return err
		}

		if err := store.UpsertOrder(ctx, order.ID, body); err != nil {
			logger.Error().Err(err).Msgf("Error storing order %s", order.ID)
			return err
		}
	}

	logger.Info().Msg("Retrieving product information for every product across all orders")

	productIDs, err := store.ListReferencedProductIDs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error deriving product ids from stored orders")
		return err
	}
	logger.Info().Msgf("Found %d products", len(productIDs))

	fetched, missed := 0, 0
	for _, id := range productIDs {
		logger.Info().Msgf("Retrieving product ID %s", id)

		body, status, err := s.client.FetchProductDetail(ctx, id)
		if err != nil {
			logger.Error().Err(err).Msgf("Error retrieving product %s", id)
			return err
		}
		if status != http.StatusOK {
			logger.Warn().Msgf("Product %s unavailable (status %d), skipping", id, status)
			missed++
			continue
		}

		if err := store.UpsertProduct(ctx, id, body); err != nil {
			logger.Error().Err(err).Msgf("Error storing product %s", id)
			return err
		}
		fetched++
	}

	logger.Info().Msgf("Sync complete: %d orders, %d products fetched, %d products missed",
		len(history.OrderHistory), fetched, missed)
	return nil
}
