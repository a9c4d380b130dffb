package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/fant-market/client/types"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Real-time messaging",
}

var chatConversationsCmd = &cobra.Command{
	Use:     "conversations",
	Short:   "List your conversations",
	Args:    cobra.NoArgs,
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		previews, err := app.messages.FetchConversations(cmd.Context())
		if err != nil {
			return err
		}
		if len(previews) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No conversations")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWITH\tITEM\tUNREAD\tLAST MESSAGE")
		for _, p := range previews {
			last := ""
			if p.LastMessage != nil {
				last = p.LastMessage.Content
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				p.ID, p.OtherUser.Username, p.Item.Title, p.UnreadMessagesCount, last)
		}
		w.Flush()
		return nil
	},
}

var chatHistoryPageable = types.Pageable{Size: 20}

var chatHistoryCmd = &cobra.Command{
	Use:     "history ITEM",
	Short:   "Show the message history for an item conversation",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		page, err := app.messages.FetchPagedMessages(cmd.Context(), args[0],
			chatHistoryPageable.Page, chatHistoryPageable.Size, chatHistoryPageable.Sort)
		if err != nil {
			return err
		}
		for _, msg := range page.Content {
			printMessage(cmd, msg)
		}
		// Everything just displayed counts as seen.
		return app.messages.ReadMessages(cmd.Context(), page.Content)
	},
}

var chatSendItem string

var chatSendCmd = &cobra.Command{
	Use:     "send RECIPIENT MESSAGE",
	Short:   "Send a chat message",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.messages.InitializeMessaging(cmd.Context()); err != nil {
			return err
		}
		defer app.messages.CleanupMessaging()

		msg, err := app.messages.SendMessage(cmd.Context(), args[0], args[1], chatSendItem)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sent (pending id %s)\n", msg.ID)
		return nil
	},
}

var chatListenCmd = &cobra.Command{
	Use:     "listen",
	Short:   "Print incoming messages until interrupted",
	Args:    cobra.NoArgs,
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.messages.InitializeMessaging(cmd.Context()); err != nil {
			return err
		}
		defer app.messages.CleanupMessaging()

		reg, err := app.messages.OnNewMessage(func(msg types.Message) {
			printMessage(cmd, msg)
		})
		if err != nil {
			return err
		}
		defer reg.Remove()

		fmt.Fprintln(cmd.OutOrStdout(), "Listening for messages (Ctrl-C to stop)")
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		select {
		case <-stop:
		case <-cmd.Context().Done():
		}
		return nil
	},
}

var chatInitCmd = &cobra.Command{
	Use:     "init ITEM",
	Short:   "Find or create the conversation for an item",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		conversationID, err := app.messages.InitiateConversation(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Conversation %s\n", conversationID)
		return nil
	},
}

func printMessage(cmd *cobra.Command, msg types.Message) {
	marker := ""
	if !msg.Read {
		marker = " *"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s%s\n",
		msg.SentDate.Format("2006-01-02 15:04"), msg.Sender.Username, msg.Content, marker)
}

func init() {
	chatHistoryCmd.Flags().IntVar(&chatHistoryPageable.Page, "page", 0, "page index (0-based)")
	chatHistoryCmd.Flags().IntVar(&chatHistoryPageable.Size, "size", 20, "page size")
	chatHistoryCmd.Flags().StringVar(&chatHistoryPageable.Sort, "sort", "", "sort expression")
	chatSendCmd.Flags().StringVar(&chatSendItem, "item", "", "item id the message is about")

	chatCmd.AddCommand(chatConversationsCmd, chatHistoryCmd, chatSendCmd, chatListenCmd, chatInitCmd)
	rootCmd.AddCommand(chatCmd)
}
