package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trpc.group/trpc-go/trpc-a2a-go/server"
	"trpc.group/trpc-go/trpc-a2a-go/taskmanager"

	"github.com/medimatch/medimatch-agent/config"
	"github.com/medimatch/medimatch-agent/dialogue"
	"github.com/medimatch/medimatch-agent/kakao"
	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/registry"
	medserver "github.com/medimatch/medimatch-agent/server"
	"github.com/medimatch/medimatch-agent/session"
	"github.com/medimatch/medimatch-agent/websocket"
)

func main() {
	host := flag.String("host", "", "Host to bind the A2A tool server to")
	manifestPath := flag.String("manifest", "configs/manifest.yaml", "Path to the capability manifest")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatal("loading environment", err)
	}
	configureLogging(env)
	log := logger.GetLogger().WithField("component", "main")

	if err := env.RequireKakaoKey(); err != nil {
		log.Fatal("missing credentials", err)
	}

	manifest, err := config.LoadManifest(*manifestPath)
	if err != nil {
		log.Fatal("loading manifest", err)
	}
	validator, err := config.NewManifestValidator()
	if err != nil {
		log.Fatal("building manifest validator", err)
	}
	if err := validator.Validate(manifest); err != nil {
		log.Fatal("invalid manifest", err)
	}
	if err := config.ValidateSkills(manifest); err != nil {
		log.Fatal("incomplete manifest", err)
	}

	// Outbound Kakao Local client.
	var kakaoOpts []kakao.ClientOption
	if env.KakaoBaseURL != "" {
		kakaoOpts = append(kakaoOpts, kakao.WithBaseURL(env.KakaoBaseURL))
	}
	search := kakao.NewClient(env.KakaoRESTKey, kakaoOpts...)

	// Live turn feed for dashboards.
	monitor := websocket.NewMonitorServer(env.MonitorPort)
	if err := monitor.Start(); err != nil {
		log.Fatal("starting monitor feed", err)
	}

	sessions := session.NewManager(session.WithExpiry(env.SessionExpiry()))
	handler := dialogue.NewHandler(search, sessions,
		dialogue.WithTurnListener(monitor.BroadcastTurn))

	// Kakao openbuilder webhook.
	skill := medserver.NewSkillServer(handler, env.SkillPort)
	if err := skill.Start(); err != nil {
		log.Fatal("starting skill webhook", err)
	}

	// A2A tool endpoint, with the public registry fallback when a key
	// is configured.
	var toolOpts []medserver.ToolOption
	if env.RegistryKey != "" {
		var regOpts []registry.ClientOption
		if env.RegistryBaseURL != "" {
			regOpts = append(regOpts, registry.WithBaseURL(env.RegistryBaseURL))
		}
		toolOpts = append(toolOpts, medserver.WithRegistry(registry.NewClient(env.RegistryKey, regOpts...)))
	}
	processor := medserver.NewToolProcessor(handler, search, toolOpts...)
	taskManager, err := taskmanager.NewMemoryTaskManager(processor)
	if err != nil {
		log.Fatal("creating task manager", err)
	}
	a2aServer, err := server.NewA2AServer(medserver.AgentCard(manifest), taskManager)
	if err != nil {
		log.Fatal("creating tool server", err)
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", *host, env.ToolPort)
		log.WithField("addr", addr).Info("tool server listening")
		if err := a2aServer.Start(addr); err != nil {
			log.Fatal("tool server failed", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.WithField("signal", sig.String()).Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := skill.Stop(ctx); err != nil {
		log.Error("stopping skill webhook", err)
	}
	if err := monitor.Stop(); err != nil {
		log.Error("stopping monitor feed", err)
	}
}

func configureLogging(env *config.EnvConfig) {
	if level, err := logger.ParseLevel(env.LogLevel); err == nil {
		logger.SetGlobalLevel(level)
	}
	logger.GetLogger().SetJSONFormat(env.LogFormat == "json")
	logger.SetGlobalComponent("medimatch")
}
