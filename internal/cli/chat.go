package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/smartcat-ai/kicat/internal/auditlog"
	"github.com/smartcat-ai/kicat/internal/board"
	"github.com/smartcat-ai/kicat/internal/catalog"
	"github.com/smartcat-ai/kicat/internal/config"
	"github.com/smartcat-ai/kicat/internal/logging"
	"github.com/smartcat-ai/kicat/internal/provider"
	"github.com/smartcat-ai/kicat/internal/session"
)

var chatBoardPath string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive design session",
	Long: `Start an interactive chat session with the PCB design assistant.

Describe circuits in plain language, ask for layer or settings changes,
and approve or deny each proposed board modification. In-session
commands: status, summary, undo, exit.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatBoardPath, "board", "", "board file to operate on")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	logger := logging.New(viper.GetBool("debug"))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var client provider.Client
	if ok, _ := config.ValidateAPIKey(cfg.Provider.APIKey, cfg.Provider.Name); ok {
		client, err = provider.New(cfg.Provider)
		if err != nil {
			return err
		}
	} else {
		fmt.Println(renderInfo("No usable API key configured; questions to the AI provider are disabled."))
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	var accessor board.Accessor
	if chatBoardPath != "" {
		accessor = board.NewSimBoard(chatBoardPath)
	} else {
		accessor = board.NewUnsavedSimBoard()
		fmt.Println(renderInfo("No board file given; modifications are disabled until one is attached."))
	}

	audit, err := auditlog.Open(cfg.Audit.Path)
	if err != nil {
		return err
	}
	defer func() { _ = audit.Close() }()

	workDir, _ := os.Getwd()

	sess := session.New(session.Options{
		Config:   cfg,
		Logger:   logger,
		Catalog:  cat,
		Provider: client,
		Board:    accessor,
		Prompter: consentPrompter{},
		Audit:    audit,
		WorkDir:  workDir,
	})
	if err := sess.LoadMemory(); err != nil {
		logger.Warn("could not load session memory", zap.Error(err))
	}

	fmt.Println(renderReply("Hello! Describe a circuit, or ask me about your board. Type 'exit' to quit."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(userPromptStyle.Render("you") + " ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			return printSummary(sess)
		case "status":
			fmt.Println(renderInfo(sess.Status()))
			continue
		case "summary":
			if err := printSummary(sess); err != nil {
				fmt.Println(renderError(err))
			}
			continue
		}

		reply, err := sess.HandleMessage(cmd.Context(), line)
		if err != nil {
			fmt.Println(renderError(err))
			continue
		}
		if reply != "" {
			fmt.Println(renderReply(reply))
		}
	}
	return scanner.Err()
}

func printSummary(sess *session.Session) error {
	summary, err := sess.Summary()
	if err != nil {
		return err
	}
	fmt.Println(renderInfo(summary))
	return nil
}
