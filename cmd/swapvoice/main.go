package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/voltline/swapvoice/internal/config"
	"github.com/voltline/swapvoice/pkg/ai/asr"
	asrfake "github.com/voltline/swapvoice/pkg/ai/asr/fake"
	"github.com/voltline/swapvoice/pkg/ai/nlu"
	"github.com/voltline/swapvoice/pkg/ai/responder"
	"github.com/voltline/swapvoice/pkg/ai/tts"
	ttsfake "github.com/voltline/swapvoice/pkg/ai/tts/fake"
	"github.com/voltline/swapvoice/pkg/audio/wav"
	"github.com/voltline/swapvoice/pkg/backend"
	"github.com/voltline/swapvoice/pkg/dialog"
	"github.com/voltline/swapvoice/pkg/handoff"
	"github.com/voltline/swapvoice/pkg/plugin"
	openaiplugin "github.com/voltline/swapvoice/pkg/plugin/openai"
	"github.com/voltline/swapvoice/pkg/session"
	"github.com/voltline/swapvoice/pkg/vad"
	"github.com/voltline/swapvoice/pkg/version"
	"github.com/voltline/swapvoice/pkg/voice"
)

var rootCmd = &cobra.Command{
	Use:          "swapvoice",
	Short:        "swapvoice - voice/text support bot for battery-swap drivers",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetVersionInfo())
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive text conversation with the dialogue engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		language, _ := cmd.Flags().GetString("language")

		logger := setupLogger()
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		engine, err := buildEngine(cfg, logger)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		conversationID := uuid.NewString()
		fmt.Printf("Conversation %s (language %s). Type your message, Ctrl-D to quit.\n", conversationID, language)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}

			response, err := engine.HandleMessage(ctx, conversationID, text, language)
			if err != nil {
				return err
			}
			fmt.Println(response.Text)
			if response.NeedsEscalation {
				fmt.Println("(escalated to a human agent)")
			}
			if response.ShouldEnd {
				break
			}
		}
		return scanner.Err()
	},
}

var vadCmd = &cobra.Command{
	Use:   "vad <file.wav>",
	Short: "Analyze a WAV file for voice activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, _ := cmd.Flags().GetFloat64("threshold")

		reader, err := wav.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		pcm, err := reader.ReadAll()
		if err != nil {
			return err
		}

		header := reader.Header()
		detector := vad.NewDetector(vad.WithSilenceThreshold(threshold))
		result := detector.Analyze(pcm, int(header.SampleRate))

		fmt.Printf("file: %s (%d Hz, %d ch, %d bytes PCM)\n",
			args[0], header.SampleRate, header.NumChannels, len(pcm))
		fmt.Printf("has_speech: %v\n", result.HasSpeech)
		fmt.Printf("audio_level: %.4f\n", result.AudioLevel)
		fmt.Printf("is_silence: %v\n", result.IsSilence)
		fmt.Printf("zero_crossing_rate: %.4f\n", result.ZeroCrossingRate)
		return nil
	},
}

var voiceCmd = &cobra.Command{
	Use:   "voice <file.wav>",
	Short: "Run one voice turn over a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		language, _ := cmd.Flags().GetString("language")
		conversationID, _ := cmd.Flags().GetString("conversation")

		logger := setupLogger()
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		engine, err := buildEngine(cfg, logger)
		if err != nil {
			return err
		}

		var transcriber asr.ASR = asrfake.NewFakeASR("find nearest station in Noida")
		var synthesizer tts.TTS = ttsfake.NewFakeTTS()
		if cfg.OpenAI.APIKey != "" {
			oc := openaiplugin.Config{APIKey: cfg.OpenAI.APIKey}
			transcriber = openaiplugin.NewWhisperASR(oc)
			synthesizer = openaiplugin.NewTTS(oc)
		} else {
			logger.Warn("no OpenAI API key configured, using fake ASR/TTS with a canned transcript")
			fmt.Println("note: no OpenAI API key configured; ASR/TTS are fakes and the transcript below is canned")
		}

		pipeline, err := voice.NewPipeline(voice.Config{
			Detector:   vad.NewDetector(vad.WithSilenceThreshold(cfg.Audio.SilenceThreshold)),
			ASR:        transcriber,
			TTS:        synthesizer,
			Engine:     engine,
			Logger:     logger,
			Nudge:      voice.NewNudgePolicyWithPrompts(cfg.Voice.NudgePrompts, cfg.Voice.FinalWarnings),
			SampleRate: cfg.Audio.SampleRate,
		})
		if err != nil {
			return err
		}

		reader, err := wav.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		pcm, err := reader.ReadAll()
		if err != nil {
			return err
		}

		if conversationID == "" {
			conversationID = uuid.NewString()
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		result, err := pipeline.ProcessVoiceInput(ctx, conversationID, pcm, language)
		if err != nil {
			return err
		}

		fmt.Printf("has_speech: %v\n", result.HasSpeech)
		fmt.Printf("transcribed: %q\n", result.TranscribedText)
		fmt.Printf("reply: %q\n", result.ResponseText)
		fmt.Printf("proactive_prompt: %v\n", result.ProactivePrompt)
		fmt.Printf("needs_escalation: %v\n", result.NeedsEscalation)
		fmt.Printf("reply_audio_bytes: %d\n", len(result.Audio))
		return nil
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered collaborator providers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range plugin.List("") {
			fmt.Printf("%s/%s\n", p.Kind, p.Name)
		}
	},
}

// buildEngine wires the dialogue engine from configuration: OpenAI
// providers when an API key is configured, keyword NLU and phrasebook
// responses otherwise; Redis sessions when an address is configured,
// in-memory otherwise.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*dialog.Engine, error) {
	var store session.Store = session.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = session.NewRedisStore(client, cfg.Redis.SessionTTL.Std())
		logger.Info("using Redis session store", slog.String("addr", cfg.Redis.Addr))
	}

	var analyzer nlu.NLU = nlu.NewKeywordNLU()
	var generator responder.Responder
	if cfg.OpenAI.APIKey != "" {
		oc := openaiplugin.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, Voice: cfg.OpenAI.Voice}
		analyzer = openaiplugin.NewNLU(oc)
		generator = openaiplugin.NewResponder(oc)
		logger.Info("using OpenAI NLU and responder")
	} else {
		logger.Info("no OpenAI API key configured, using keyword NLU")
	}

	keywords := dialog.DefaultKeywordTable()
	mergeKeywords(keywords, cfg.Keywords)

	return dialog.New(dialog.Config{
		Store:               store,
		NLU:                 analyzer,
		Backend:             backend.NewMock(),
		Handoff:             handoff.NewLogHandoff(logger),
		Responder:           generator,
		Logger:              logger,
		Keywords:            keywords,
		ConfidenceThreshold: cfg.Dialog.ConfidenceThreshold,
		MaxRetries:          cfg.Dialog.MaxRetries,
		DriverID:            cfg.Dialog.DriverID,
	})
}

func mergeKeywords(table *dialog.KeywordTable, overrides config.KeywordsConfig) {
	mergeLists(table.Greetings, overrides.Greetings)
	mergeLists(table.NeedWords, overrides.NeedWords)
	mergeLists(table.QuestionWords, overrides.QuestionWords)
	mergeLists(table.HelpWords, overrides.HelpWords)
	mergeLists(table.AgentWords, overrides.AgentWords)
}

func mergeLists(dst, src map[string][]string) {
	for lang, words := range src {
		dst[lang] = append(dst[lang], words...)
	}
}

func setupLogger() *slog.Logger {
	opts := &slog.HandlerOptions{}
	switch os.Getenv("SWAPVOICE_LOG_LEVEL") {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	var handler slog.Handler
	if os.Getenv("SWAPVOICE_LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func main() {
	chatCmd.Flags().String("config", "", "path to YAML config file")
	chatCmd.Flags().String("language", "en", "dialogue language bucket (en or hi)")
	vadCmd.Flags().Float64("threshold", vad.DefaultSilenceThreshold, "RMS silence threshold")
	voiceCmd.Flags().String("config", "", "path to YAML config file")
	voiceCmd.Flags().String("language", "en-US", "channel language tag")
	voiceCmd.Flags().String("conversation", "", "conversation id (default: random)")

	rootCmd.AddCommand(versionCmd, chatCmd, vadCmd, voiceCmd, providersCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
