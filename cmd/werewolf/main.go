// cmd/werewolf/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/wolfden/werewolf-client/internal/api"
	"github.com/wolfden/werewolf-client/internal/config"
	"github.com/wolfden/werewolf-client/internal/connection"
	"github.com/wolfden/werewolf-client/internal/directory"
	"github.com/wolfden/werewolf-client/internal/models"
	"github.com/wolfden/werewolf-client/internal/session"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)

	apiClient := api.NewClient(cfg.ServerURL, logger)
	conn := connection.NewManager(cfg.GameSocketURL, logger)
	ctrl := session.NewController(apiClient, conn, logger)

	ctrl.OnUpdate = printSnapshot
	ctrl.OnServerError = func(msg string) {
		fmt.Printf("server: %s\n", msg)
	}
	ctrl.OnDisconnect = func(err error) {
		fmt.Println("connection lost; use 'leave' and rejoin")
	}

	dir := directory.New(apiClient, cfg.PollInterval, logger)
	dir.OnRooms = printRooms

	ctx := context.Background()
	dir.Start(ctx)

	fmt.Printf("werewolf client — server %s\n", cfg.ServerURL)
	fmt.Println("commands: create | join <id> | iam <playerId> | start | actions | act <action> <targetId> | leave | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "create":
			id, err := ctrl.CreateSession(ctx)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			dir.Stop()
			fmt.Println("created and joined session", id)

		case "join":
			if len(fields) < 2 {
				fmt.Println("usage: join <sessionId>")
				continue
			}
			if err := ctrl.JoinSession(ctx, fields[1]); err != nil {
				fmt.Println("error:", err)
				continue
			}
			dir.Stop()

		case "iam":
			if len(fields) < 2 {
				fmt.Println("usage: iam <playerId>")
				continue
			}
			if err := ctrl.SelectIdentity(fields[1]); err != nil {
				fmt.Println("error:", err)
			}

		case "start":
			if err := ctrl.StartGame(); err != nil {
				fmt.Println("error:", err)
			}

		case "actions":
			printActions(ctrl)

		case "act":
			if len(fields) < 3 {
				fmt.Println("usage: act <action> <targetId>")
				continue
			}
			if err := ctrl.SubmitAction(models.ActionKind(fields[1]), fields[2]); err != nil {
				fmt.Println("error:", err)
			}

		case "leave":
			ctrl.LeaveSession()
			dir.Start(ctx)

		case "quit":
			ctrl.LeaveSession()
			dir.Stop()
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}

	ctrl.LeaveSession()
	dir.Stop()
}

func printSnapshot(s session.State) {
	fmt.Printf("\n[%s] session %s round %d\n", s.Phase, s.SessionID, s.Round)
	for _, p := range s.Roster {
		marks := ""
		if p.ID == s.LocalPlayerID {
			marks += " (you)"
		}
		if p.IsPoliceman {
			marks += " [policeman]"
		}
		if p.RunningForPoliceman {
			marks += " [candidate]"
		}
		role := ""
		if p.Role != "" {
			role = " " + string(p.Role)
		}
		fmt.Printf("  %-4s %-10s %-5s%s%s\n", p.ID, p.Name, p.Status, role, marks)
	}
}

func printRooms(rooms []models.RoomSummary) {
	if len(rooms) == 0 {
		fmt.Println("\nno active rooms; 'create' to start one")
		return
	}
	fmt.Println("\navailable rooms:")
	for _, r := range rooms {
		status := "ready for next phase"
		if r.WaitingForActions {
			status = fmt.Sprintf("waiting for %d action(s)", r.PendingActionsCount)
		}
		fmt.Printf("  %s  %s round %d  players %d/%d  %s\n",
			r.SessionID, r.Phase, r.Round, r.AlivePlayers, r.TotalPlayers, status)
	}
}

func printActions(ctrl *session.Controller) {
	snap, ok := ctrl.Snapshot()
	if !ok {
		fmt.Println("not in a session")
		return
	}
	set := ctrl.AvailableActions()
	if set.Empty() {
		fmt.Printf("no actions available in phase %s\n", snap.Phase)
		return
	}
	for _, kind := range set.Actions() {
		fmt.Printf("  %s -> targets %s\n", kind, strings.Join(set.Targets(kind), ", "))
	}
}
