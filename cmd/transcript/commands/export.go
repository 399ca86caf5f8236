package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/adapter"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/anonymize"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/archive"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/config"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/render"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/theme"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/transcript"
)

var (
	exportInput      string
	exportStdin      bool
	exportOutput     string
	exportFormat     string
	exportTheme      string
	exportPagination string
	exportNoSearch   bool
	exportNoEmbeds   bool
	exportNoReacts   bool
	exportComponents string
	exportLimit      int
	exportSort       string
	exportTimezone   string
	exportLocale     string
	exportAdapter    string
	exportChannel    string
	exportToken      string
	exportAnonymize  bool
	exportArchive    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate a transcript from a JSON file, stdin payload, or adapter",
	Long: `Generate a transcript from Discord-like message data.

Input is a JSON array of messages, or an object with a "messages" array.
Without --input or --stdin, a channel id and adapter are required so the
messages can be fetched.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Path to a JSON file containing an array of Discord-like messages")
	exportCmd.Flags().BoolVar(&exportStdin, "stdin", false, "Read messages from STDIN")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Where to write the transcript output")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: html|json|markdown|pdf|all (default html)")
	exportCmd.Flags().StringVar(&exportTheme, "theme", "", "Theme preset to use (dark|light) (default dark)")
	exportCmd.Flags().StringVar(&exportPagination, "pagination", "", "Enable pagination for HTML output, optionally with a page size")
	exportCmd.Flags().Lookup("pagination").NoOptDefVal = "default"
	exportCmd.Flags().BoolVar(&exportNoSearch, "no-search", false, "Disable in-page search UI")
	exportCmd.Flags().BoolVar(&exportNoEmbeds, "no-embeds", false, "Exclude embeds from the export")
	exportCmd.Flags().BoolVar(&exportNoReacts, "no-reactions", false, "Exclude reactions from the export")
	exportCmd.Flags().StringVar(&exportComponents, "components", render.ComponentsSkyra, "Component renderer to use: native|skyra")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "Limit the number of messages to export")
	exportCmd.Flags().StringVar(&exportSort, "sort", "", "Message order: asc|desc (default asc)")
	exportCmd.Flags().StringVar(&exportTimezone, "timezone", "", "Override timezone when rendering timestamps")
	exportCmd.Flags().StringVar(&exportLocale, "locale", "", "Override locale when rendering timestamps")
	exportCmd.Flags().StringVar(&exportAdapter, "adapter", "", "Force a specific adapter to be used when fetching")
	exportCmd.Flags().StringVar(&exportChannel, "channel", "", "Channel id (requires an adapter capable of fetching)")
	exportCmd.Flags().StringVar(&exportToken, "token", "", "Bot token (used by some adapters)")
	exportCmd.Flags().BoolVar(&exportAnonymize, "anonymize", false, "Replace usernames and avatars with placeholders")
	exportCmd.Flags().BoolVar(&exportArchive, "archive", false, "Record this export in the local run archive")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var source any
	switch {
	case exportInput != "":
		raw, err := os.ReadFile(exportInput)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		messages, err := decodeMessages(raw)
		if err != nil {
			return err
		}
		source = messages
	case exportStdin:
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		messages, err := decodeMessages(raw)
		if err != nil {
			return err
		}
		source = messages
	case exportChannel != "":
		// No local payload; the adapter registry does the fetching.
		source = struct{}{}
	default:
		return errors.New("no input provided: use --input <file>, pipe JSON via --stdin, or provide --channel with a supported adapter")
	}

	format := exportFormat
	if format == "" {
		format = cfg.GetStringWithFallback("export.format", render.FormatHTML)
	}
	themeName := exportTheme
	if themeName == "" {
		themeName = cfg.GetString("export.theme")
	}
	if themeName != "" && !theme.IsBuiltIn(themeName) {
		logger.Warn().Str("theme", themeName).Msg("unknown theme, rendering without theme styles")
	}
	token := exportToken
	if token == "" {
		token = cfg.GetString("fetch.token")
	}
	limit := exportLimit
	if limit == 0 {
		limit = cfg.GetIntWithFallback("export.limit", 0)
	}

	opts := transcript.Options{
		Source:            source,
		Formats:           splitFormats(format),
		Theme:             themeName,
		Sort:              exportSort,
		Limit:             limit,
		ExcludeEmbeds:     exportNoEmbeds,
		ExcludeReactions:  exportNoReacts,
		Pagination:        parsePagination(exportPagination),
		HideSearch:        exportNoSearch,
		Timezone:          exportTimezone,
		Locale:            exportLocale,
		ComponentRenderer: exportComponents,
		Anonymize:         anonymize.Options{Usernames: exportAnonymize, Avatars: exportAnonymize},
		Fetch: adapter.FetchOptions{
			Adapter:   exportAdapter,
			ChannelID: exportChannel,
			Token:     token,
			Limit:     limit,
		},
		Logger: logger,
	}

	result, err := transcript.Generate(cmd.Context(), opts)
	if err != nil {
		return err
	}

	for _, tag := range result.Formats {
		if err := writeOutput(cmd, result, tag, len(result.Formats) > 1); err != nil {
			return err
		}
	}

	if exportArchive {
		if err := recordRun(cfg, result); err != nil {
			return err
		}
	}
	return nil
}

// decodeMessages accepts either a bare JSON array of messages or an
// object wrapping one under a "messages" key.
func decodeMessages(raw []byte) ([]normalize.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return []normalize.RawMessage{}, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var messages []normalize.RawMessage
		if err := json.Unmarshal(raw, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse messages: %w", err)
		}
		return messages, nil
	}
	var wrapper struct {
		Messages []normalize.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	if wrapper.Messages == nil {
		return nil, errors.New("input JSON must be an array of messages or an object with a messages array")
	}
	return wrapper.Messages, nil
}

// parsePagination maps the optional-value --pagination flag to a page
// size. Bare --pagination selects the default size; a non-numeric or
// non-positive value does too.
func parsePagination(value string) int {
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return n
	}
	return render.DefaultPageSize
}

func splitFormats(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writeOutput writes one rendered format to --output or stdout. With
// multiple formats the output path gets a per-format extension.
func writeOutput(cmd *cobra.Command, result *transcript.Result, tag string, multi bool) error {
	path := exportOutput
	if multi && path != "" {
		path = path + "." + extensionFor(tag)
	}

	var payload []byte
	switch tag {
	case render.FormatHTML:
		payload = []byte(result.HTML)
	case render.FormatJSON:
		data, err := json.MarshalIndent(result.JSON, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal transcript: %w", err)
		}
		payload = data
	case render.FormatMarkdown:
		payload = []byte(result.Markdown)
	case render.FormatPDF:
		payload = result.PDF
		if path == "" {
			path = "transcript.pdf"
		}
	default:
		return fmt.Errorf("unsupported format: %s", tag)
	}

	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return nil
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write %s transcript: %w", tag, err)
	}
	logger.Info().Str("format", tag).Str("path", path).Msg("transcript written")
	return nil
}

func extensionFor(tag string) string {
	switch tag {
	case render.FormatHTML:
		return "html"
	case render.FormatJSON:
		return "json"
	case render.FormatMarkdown:
		return "md"
	case render.FormatPDF:
		return "pdf"
	default:
		return tag
	}
}

// resolveArchivePath prefers the --archive-db flag, then the archive.path
// config key, then the default location under the home directory.
func resolveArchivePath(cfg *config.Config) string {
	if archivePath != "" {
		return archivePath
	}
	if path := cfg.GetString("archive.path"); path != "" {
		return path
	}
	return archive.DefaultPath()
}

func recordRun(cfg *config.Config, result *transcript.Result) error {
	db, err := archive.Open(resolveArchivePath(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.Record(archive.Run{
		GeneratedAt:  result.Metadata.GeneratedAt,
		Formats:      result.Formats,
		Theme:        result.Theme.Name,
		MessageCount: result.Metadata.MessageCount,
		Adapter:      result.Metadata.Adapter,
		OutputPath:   exportOutput,
	})
	if err != nil {
		return err
	}
	logger.Info().Str("run", id).Time("generated", result.Metadata.GeneratedAt.Truncate(time.Second)).Msg("export recorded")
	return nil
}
