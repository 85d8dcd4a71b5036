// Package inspect serves a small HTTP surface for looking into a running
// client: shard layout, pool usage, and ring placement queries.
package inspect

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/anthanhphan/go-sharded-kv-client/internal/client"
	"github.com/anthanhphan/go-sharded-kv-client/internal/client/config"
)

const defaultDistributionSamples = 10000

type Server struct {
	app *fiber.App
	cfg *config.Config
	kv  *client.Client
}

func NewServer(cfg *config.Config, kv *client.Client) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app: app,
		cfg: cfg,
		kv:  kv,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/shards", s.handleShards)
	s.app.Get("/pools", s.handlePools)
	s.app.Get("/ring/locate", s.handleLocate)
	s.app.Get("/ring/distribution", s.handleDistribution)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Inspect.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) handleShards(c *fiber.Ctx) error {
	rt := s.kv.Router()

	shards := make([]fiber.Map, 0)
	for _, sh := range rt.Shards() {
		shards = append(shards, fiber.Map{
			"name":   sh.Name,
			"weight": sh.Weight,
		})
	}

	return c.JSON(fiber.Map{
		"shards":         shards,
		"virtual_points": rt.VirtualPoints(),
		"collisions":     rt.Collisions(),
	})
}

func (s *Server) handlePools(c *fiber.Ctx) error {
	rt := s.kv.Router()

	pools := make([]fiber.Map, 0)
	shards := rt.Shards()
	for i, p := range rt.Resources() {
		pools = append(pools, fiber.Map{
			"shard": shards[i].Name,
			"stats": p.Stats(),
		})
	}

	return c.JSON(fiber.Map{"pools": pools})
}

func (s *Server) handleLocate(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'key' query parameter")
	}

	rt := s.kv.Router()
	return c.JSON(fiber.Map{
		"key":     key,
		"key_tag": rt.KeyTag(key),
		"shard":   rt.Lookup(key).Name,
	})
}

// handleDistribution routes n synthetic keys and reports how many landed on
// each shard, as a quick balance check for the configured weights.
func (s *Server) handleDistribution(c *fiber.Ctx) error {
	samples := defaultDistributionSamples
	if raw := c.Query("samples"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid 'samples' query parameter")
		}
		samples = n
	}

	rt := s.kv.Router()
	counts := make(map[string]int, len(rt.Shards()))
	for i := 0; i < samples; i++ {
		counts[rt.Lookup("sample-key-"+strconv.Itoa(i)).Name]++
	}

	return c.JSON(fiber.Map{
		"samples":      samples,
		"distribution": counts,
	})
}
