package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/chat"
)

func init() {
	history := &cobra.Command{
		Use:   "history",
		Short: "Show the conversation log",
		Args:  cobra.NoArgs,
		Run:   runHistory,
	}
	history.Flags().IntP("limit", "l", 0, "Show only the last N messages")

	RootCmd.AddCommand(&cobra.Command{
		Use:   "chat <message>",
		Short: "Talk to the Calmish companion",
		Long:  "Send a message to the companion. Needs a Gemini API key (chat.api_key, CALMISH_CHAT_API_KEY or GEMINI_API_KEY).",
		Args:  cobra.MinimumNArgs(1),
		Run:   runChat,
	}, history)
}

func runChat(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	reply, err := a.Chat(cmd.Context()).Send(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		closeApp(a)
		fmt.Fprintln(os.Stderr, chat.UserMessage(err))
		os.Exit(1)
	}
	render(cmd, reply, func(w io.Writer) {
		fmt.Fprintln(w, reply.Text)
	})
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	a := openApp(cmd)
	defer closeApp(a)

	log := a.State.Conversation().Tail(limit)
	render(cmd, log, func(w io.Writer) {
		for _, m := range log {
			fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Local().Format("2006-01-02 15:04"), m.Role, m.Text)
		}
	})
}
