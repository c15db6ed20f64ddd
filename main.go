package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"pharmacy-distance/internal/calculator"
	"pharmacy-distance/internal/config"
	"pharmacy-distance/internal/distance"
	"pharmacy-distance/internal/logging"
	"pharmacy-distance/internal/models"
	"pharmacy-distance/internal/presenter"
	"pharmacy-distance/internal/prompt"
	"pharmacy-distance/internal/roster"
	"pharmacy-distance/internal/server"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MessageFetchError = "error fetching distance matrix"
	ExportSheet       = "Closest"
)

type app struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	in         io.Reader
	out        io.Writer
	exportPath string
	newMatrix  func(distance.Config) (distance.Matrix, error)
}

func main() {
	rosterPath := flag.String("roster", "", "roster file (.csv or .xlsx), overrides ROSTER_PATH")
	sheet := flag.String("sheet", "", "sheet to read from an .xlsx roster, overrides ROSTER_SHEET")
	out := flag.String("out", "", "also write the closest pharmacies to this .xlsx file")
	serve := flag.Bool("serve", false, "serve the lookup over HTTP instead of prompting")
	flag.Parse()

	cfg, envLoaded := config.Load()
	if *rosterPath != "" {
		cfg.RosterPath = *rosterPath
	}
	if *sheet != "" {
		cfg.RosterSheet = *sheet
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	if !envLoaded {
		logger.Debugw("no .env file found, using system environment variables")
	}

	a := &app{
		cfg:        cfg,
		logger:     logger.With("run_id", uuid.New().String()),
		in:         os.Stdin,
		out:        os.Stdout,
		exportPath: *out,
		newMatrix:  distance.NewMatrix,
	}

	ctx := context.Background()
	if *serve {
		err = a.serve(ctx)
	} else {
		err = a.runInteractive(ctx)
	}
	if err != nil {
		a.logger.Fatalw("pharmacy-distance failed", "error", err)
	}
	logger.Sync()
	os.Exit(0)
}

// runInteractive loads the roster, asks for the patient address and prints
// the closest pharmacies. A nil error covers every normal ending: no
// pharmacies in the state, nothing ranked, or a rendered table.
func (a *app) runInteractive(ctx context.Context) error {
	pharmacies, err := a.loadRoster()
	if err != nil {
		return err
	}

	query, err := prompt.New(a.in, a.out).Ask(pharmacies)
	if errors.Is(err, prompt.ErrNoPharmaciesInState) {
		a.logger.Infow("no pharmacies in state")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read patient address: %w", err)
	}

	candidates := models.FilterByState(pharmacies, query.State)
	ranker, err := a.newRanker()
	if err != nil {
		return err
	}
	ranker.OnProgress = func(current, total int, msg string) {
		a.logger.Debugw("batch progress", "current", current, "total", total)
	}

	start := time.Now()
	results, err := ranker.Nearest(ctx, candidates, query.Address)
	if err != nil {
		if !errors.Is(err, calculator.ErrDistanceFetch) {
			return err
		}
		fmt.Fprintln(a.out, MessageFetchError)
		a.logger.Warnw("distance lookup failed", "state", query.State, "candidates", len(candidates), "error", err)
		results = nil
	}
	a.logger.Infow("ranking finished", "state", query.State, "candidates", len(candidates), "results", len(results), "elapsed", time.Since(start))

	shown, err := presenter.Render(a.out, results)
	if err != nil || !shown {
		return err
	}

	if a.exportPath != "" {
		if err := roster.WriteResults(a.exportPath, results, ExportSheet); err != nil {
			return fmt.Errorf("write %s: %w", a.exportPath, err)
		}
		a.logger.Infow("results exported", "path", a.exportPath)
	}
	return nil
}

// serve exposes the same lookup over HTTP until SIGINT or SIGTERM.
func (a *app) serve(ctx context.Context) error {
	pharmacies, err := a.loadRoster()
	if err != nil {
		return err
	}
	ranker, err := a.newRanker()
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.NewHandler(pharmacies, ranker, a.logger))

	srv := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infow("server starting", "port", a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}
	a.logger.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func (a *app) loadRoster() ([]models.Pharmacy, error) {
	pharmacies, err := roster.Load(a.cfg.RosterPath, a.cfg.RosterSheet)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	a.logger.Infow("roster loaded", "path", a.cfg.RosterPath, "pharmacies", len(pharmacies))
	return pharmacies, nil
}

// newRanker fails when the Maps credential is missing, before any request.
func (a *app) newRanker() (*calculator.Ranker, error) {
	units, err := distance.ParseUnits(a.cfg.DistanceUnits)
	if err != nil {
		return nil, err
	}
	matrix, err := a.newMatrix(distance.Config{APIKey: a.cfg.GoogleMapsAPIKey, BaseURL: a.cfg.MapsBaseURL})
	if err != nil {
		return nil, err
	}
	return &calculator.Ranker{Matrix: matrix, Units: units, Logger: a.logger}, nil
}
