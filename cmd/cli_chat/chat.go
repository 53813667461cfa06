package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"companion-llm/internal/config"
	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
	"companion-llm/internal/repository"
	"companion-llm/internal/service"
)

const cliUserID = "cli-user"

var (
	chatRole        string
	chatAIName      string
	chatLanguage    string
	chatRegion      string
	chatTimezone    string
	chatPersonaFile string
	chatVerbose     bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive conversation with a companion",
	Long: `Start an interactive conversation. Each line read from stdin is one user turn.
History lives in memory and is lost on exit. Type /quit to leave.

Examples:
  cli_chat chat --role FATHER --name "Papa Joe"
  cli_chat chat --role FRIEND --language es --region mx --timezone America/Mexico_City`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatRole, "role", string(domain.RoleFriend), "relationship role (FATHER, MOTHER, GRANDPARENT, SIBLING, FRIEND, MENTOR, ROMANTIC_PARTNER)")
	chatCmd.Flags().StringVar(&chatAIName, "name", "", "name the companion uses")
	chatCmd.Flags().StringVar(&chatLanguage, "language", "en", "user language code")
	chatCmd.Flags().StringVar(&chatRegion, "region", "", "user region")
	chatCmd.Flags().StringVar(&chatTimezone, "timezone", "", "IANA timezone of the user")
	chatCmd.Flags().StringVar(&chatPersonaFile, "persona-file", "", "YAML persona override (or PERSONA_FILE env)")
	chatCmd.Flags().BoolVarP(&chatVerbose, "verbose", "v", false, "print response metadata")
}

func runChat(cmd *cobra.Command, _ []string) error {
	role, ok := domain.ParseRoleType(chatRole)
	if !ok {
		return fmt.Errorf("unknown role %q", chatRole)
	}

	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return fmt.Errorf("load llm config: %w", err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	personaFile := chatPersonaFile
	if personaFile == "" {
		personaFile = os.Getenv("PERSONA_FILE")
	}
	personas, err := service.LoadPersonaRegistry(personaFile)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(*llmCfg, logger)
	if err != nil {
		return err
	}

	prefs, err := json.Marshal(domain.UserPreferences{
		Language: chatLanguage,
		Region:   chatRegion,
		Timezone: chatTimezone,
	})
	if err != nil {
		return err
	}

	store := repository.NewMemoryStore()
	relationship := domain.Relationship{
		ID:        uuid.NewString(),
		UserID:    cliUserID,
		RoleType:  role,
		AIName:    chatAIName,
		CreatedAt: time.Now().UTC(),
	}
	store.PutRelationship(relationship)
	store.PutUser(domain.User{ID: cliUserID, DisplayName: "You", Preferences: prefs, CreatedAt: relationship.CreatedAt})

	contexts := service.NewBasicContextService(store, store, store.Users(), 0, nil)
	messages := service.NewMessageService(store, nil)
	companion := service.NewCompanionService(logger, contexts, messages, client, personas, service.CompanionConfig{
		GenerationTimeout: time.Duration(llmCfg.TimeoutSeconds) * time.Second,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Chatting with your %s. Type /quit to exit.\n", strings.ToLower(string(role)))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		resp, err := companion.GenerateResponse(ctx, relationship.ID, line, cliUserID)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, resp.Content)
		if chatVerbose {
			fmt.Fprintf(out, "  [%s tone=%s emotion=%s urgency=%s %dms]\n",
				resp.Metadata.Outcome, resp.EmotionalTone, resp.Metadata.UserEmotion, resp.Metadata.Urgency, resp.Metadata.ProcessingTimeMs)
		}
	}
	return scanner.Err()
}
