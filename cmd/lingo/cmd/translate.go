package cmd

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/padwhen/language-learning-app/internal/config"
	"github.com/padwhen/language-learning-app/internal/core"
	"github.com/padwhen/language-learning-app/internal/core/model"
	"github.com/padwhen/language-learning-app/internal/llm"
	"github.com/padwhen/language-learning-app/internal/logging"
)

var (
	translateLanguage string
	translateStream   bool
	translateNoReview bool
)

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate text with the configured model",
	Long: `Translates text into English with vocabulary, using the model from the
configuration. History is not stored.

Examples:
  lingo translate --language fi "Kissa juoksee nopeasti"
  lingo translate -l ko --stream --compact "고양이가 달린다"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&translateLanguage, "language", "l", "fi", "language of the text (code or name)")
	translateCmd.Flags().BoolVar(&translateStream, "stream", false, "print intermediate results")
	translateCmd.Flags().BoolVar(&translateNoReview, "no-review", false, "skip the review pass")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("load config", err)
		return err
	}
	if translateNoReview {
		cfg.Interpreter.ReviewEnabled = false
	}
	logger := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		printError("create llm client", err)
		return err
	}

	translator := core.NewTranslator(llmClient, cfg, nil, logger)
	req := core.Request{Text: strings.Join(args, " "), Language: translateLanguage}
	out := cmd.OutOrStdout()

	if !translateStream {
		result, err := translator.Translate(ctx, req)
		if err != nil {
			printError("translate", err)
			return err
		}
		return printJSON(out, result)
	}

	var printErr error
	_, err = translator.TranslateStream(ctx, req, func(r model.TranslationResult) {
		if printErr == nil {
			printErr = printJSON(out, r)
		}
	})
	if err != nil {
		printError("translate", err)
		return err
	}
	return printErr
}
