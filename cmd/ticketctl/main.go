// Command ticketctl talks to a running ticketbot server.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eldtechnologies/ticketbot/clients/go/ticketbot"
)

var client *ticketbot.Client

func main() {
	client = ticketbot.NewClient(os.Getenv("TICKETBOT_URL"))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ticketctl",
	Short: "Command line client for ticketbot",
	Long: `ticketctl sends chat messages to a ticketbot server and manages the
ticket prefixes it recognizes. Set TICKETBOT_URL to point at the server
(default http://localhost:8080).`,
	SilenceUsage: true,
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <message>",
	Short: "Send a chat message and print the bot's reply",
	Long: `Send a chat message as if it arrived from the chat transport.

Examples:
  ticketctl dispatch "helga jira add OPS" --public
  ticketctl dispatch "jira remove OPS"
  ticketctl dispatch "is OPS-12 fixed yet?" --public --channel "#ops"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nick, _ := cmd.Flags().GetString("nick")
		channel, _ := cmd.Flags().GetString("channel")
		public, _ := cmd.Flags().GetBool("public")
		return runDispatch(nick, channel, args[0], public)
	},
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage recognized ticket prefixes",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recognized prefixes",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefixes, err := client.ListPatterns()
		if err != nil {
			return err
		}
		for _, p := range prefixes {
			fmt.Println(p)
		}
		return nil
	},
}

var patternsAddCmd = &cobra.Command{
	Use:   "add <prefix>",
	Short: "Recognize tickets with this prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := client.AddPattern(args[0])
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("added %s\n", args[0])
		} else {
			fmt.Printf("%s already recognized\n", args[0])
		}
		return nil
	},
}

var patternsRemoveCmd = &cobra.Command{
	Use:   "remove <prefix>",
	Short: "Stop recognizing tickets with this prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.RemovePattern(args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.Health()
		if err != nil {
			return err
		}
		return printJSON(resp)
	},
}

func init() {
	dispatchCmd.Flags().String("nick", os.Getenv("USER"), "sender nick")
	dispatchCmd.Flags().String("channel", "", "channel the message arrived on")
	dispatchCmd.Flags().Bool("public", false, "message was sent to a shared channel")

	patternsCmd.AddCommand(patternsListCmd, patternsAddCmd, patternsRemoveCmd)
	rootCmd.AddCommand(dispatchCmd, patternsCmd, healthCmd)
}

func runDispatch(nick, channel, message string, public bool) error {
	resp, err := client.Dispatch(ticketbot.DispatchRequest{
		Nick:     nick,
		Channel:  channel,
		Message:  message,
		IsPublic: public,
	})
	if err != nil {
		return err
	}
	if resp == nil {
		fmt.Fprintln(os.Stderr, "(no reply)")
		return nil
	}
	fmt.Println(resp.Reply)
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
