package cmd

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/padwhen/language-learning-app/internal/core/interpret"
	"github.com/padwhen/language-learning-app/internal/core/model"
)

var (
	interpretStream    bool
	interpretChunkSize int
	interpretMaxBytes  int
)

var interpretCmd = &cobra.Command{
	Use:   "interpret [file]",
	Short: "Recover a translation from a raw model response",
	Long: `Reads a model response from a file or stdin and prints the recovered
translation as JSON.

With --stream the response is fed in chunks of --chunk-size bytes and every
intermediate result is printed, the way a streaming client would see it.

Examples:
  lingo interpret response.txt
  cat response.txt | lingo interpret --stream --chunk-size 16 --compact`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInterpret,
}

func init() {
	rootCmd.AddCommand(interpretCmd)

	interpretCmd.Flags().BoolVarP(&interpretStream, "stream", "s", false, "replay the response as a stream")
	interpretCmd.Flags().IntVarP(&interpretChunkSize, "chunk-size", "n", 32, "bytes per chunk with --stream")
	interpretCmd.Flags().IntVar(&interpretMaxBytes, "max-bytes", interpret.DefaultMaxBytes, "bytes of the response to examine")
}

func runInterpret(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			printError("open response", err)
			return err
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		printError("read response", err)
		return err
	}

	interpreter := interpret.Interpreter{MaxBytes: interpretMaxBytes}
	out := cmd.OutOrStdout()

	if !interpretStream {
		result := interpreter.ApplyChunk(model.NewResult(""), model.RawChunk{Text: string(data), Final: true})
		return printJSON(out, result)
	}

	if interpretChunkSize < 1 {
		return fmt.Errorf("chunk size must be positive, got %d", interpretChunkSize)
	}

	result := model.NewResult("")
	for _, chunk := range Chunks(string(data), interpretChunkSize) {
		result = interpreter.ApplyChunk(result, chunk)
		if err := printJSON(out, result); err != nil {
			return err
		}
	}
	return nil
}

// Chunks splits text into pieces of at most size bytes without splitting a
// UTF-8 sequence. The last chunk is marked final; empty text yields a single
// empty final chunk.
func Chunks(text string, size int) []model.RawChunk {
	var chunks []model.RawChunk
	for len(text) > size {
		cut := size
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = size
		}
		chunks = append(chunks, model.RawChunk{Text: text[:cut]})
		text = text[cut:]
	}
	return append(chunks, model.RawChunk{Text: text, Final: true})
}
