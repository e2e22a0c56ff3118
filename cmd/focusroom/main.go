package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"focusroom/internal/config"
	"focusroom/internal/engine"
	"focusroom/internal/model"
	"focusroom/internal/remote"
	"focusroom/internal/room"
	"focusroom/internal/stats"
	"focusroom/internal/store"
	syncproto "focusroom/internal/sync"
)

func main() {
	cfg := config.LoadClient()

	local, err := store.OpenLocal(cfg.LocalDBPath)
	if err != nil {
		log.Fatalf("open local store: %v", err)
	}
	defer local.Close()

	ledger := stats.NewLedger(local, nil)
	eng := engine.New(local, ledger, nil)
	rooms := room.New(local, eng)
	client := remote.NewClient(cfg.APIBaseURL)

	pusher := syncproto.NewPusher(cfg.SyncDebounce, func(ctx context.Context) error {
		if !client.Authenticated() {
			return nil
		}
		return client.UpsertRoom(ctx, rooms.Snapshot())
	})
	defer pusher.Stop()
	rooms.SetNotifier(pusher)

	eng.SetListener(func(event engine.Event) {
		fmt.Printf("\n[%s]\n", event)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.NewDriver(eng, cfg.TickInterval).Run(ctx)

	fmt.Println("focusroom - type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "start":
			eng.Start()
		case "pause":
			eng.Pause()
		case "resume":
			eng.Resume()
		case "skip":
			eng.Skip()
		case "reset":
			eng.Reset()
		case "status":
			printStatus(eng, ledger)
		case "shop":
			printShop(rooms)
		case "buy":
			if len(fields) < 2 {
				fmt.Println("usage: buy <item-id>")
				continue
			}
			if err := rooms.Purchase(fields[1]); err != nil {
				fmt.Println("error:", err)
			}
		case "toggle":
			if len(fields) < 2 {
				fmt.Println("usage: toggle <item-id>")
				continue
			}
			if err := rooms.Toggle(fields[1]); err != nil {
				fmt.Println("error:", err)
			}
		case "move":
			handleMove(rooms, fields)
		case "theme":
			if len(fields) < 2 {
				fmt.Println("usage: theme <default|cozy|nature|space>")
				continue
			}
			rooms.SetTheme(fields[1])
		case "stats":
			printStats(ledger)
		case "login":
			handleLogin(client, eng, rooms, ledger, fields)
		case "register":
			handleRegister(client, eng, rooms, ledger, fields)
		case "leaderboard":
			printLeaderboard(client)
		case "sync":
			pusher.Flush()
			fmt.Println("pushed")
		case "help":
			printHelp()
		case "quit", "exit":
			pusher.Flush()
			return
		default:
			fmt.Println("unknown command, try 'help'")
		}
	}
}

func printStatus(eng *engine.Engine, ledger *stats.Ledger) {
	snap := eng.Snapshot()
	fmt.Printf("%s  %02d:%02d  session %d/%d  today %d  coins %d\n",
		snap.Status,
		snap.RemainingSeconds/60,
		snap.RemainingSeconds%60,
		snap.CurrentSession,
		model.SessionsPerSet,
		snap.CompletedToday,
		eng.Coins(),
	)
}

func printShop(rooms *room.Store) {
	for _, item := range model.ShopCatalog {
		marker := " "
		if rooms.Owns(item.ID) {
			marker = "*"
			if rooms.IsActive(item.ID) {
				marker = "+"
			}
		}
		fmt.Printf("%s %-14s %-10s %2d coins  %s\n", marker, item.ID, item.Category, item.Price, item.Name)
	}
}

func handleMove(rooms *room.Store, fields []string) {
	if len(fields) < 4 {
		fmt.Println("usage: move <item-id> <u> <v>")
		return
	}
	u, errU := strconv.ParseFloat(fields[2], 64)
	v, errV := strconv.ParseFloat(fields[3], 64)
	if errU != nil || errV != nil {
		fmt.Println("u and v must be numbers in [0,1]")
		return
	}
	rooms.SetPosition(fields[1], u, v)
	pos := rooms.Position(fields[1])
	fmt.Printf("%s at (%.2f, %.2f)\n", fields[1], pos[0], pos[1])
}

func printStats(ledger *stats.Ledger) {
	count, minutes, days := ledger.Totals()
	fmt.Printf("total %d sessions, %d minutes over %d days, streak %d\n",
		count, minutes, days, ledger.Streak())
	for _, day := range ledger.Weekly() {
		fmt.Printf("  %s  %2d sessions  %4d min\n", day.Day, day.Count, day.Minutes)
	}
}

func handleLogin(client *remote.Client, eng *engine.Engine, rooms *room.Store, ledger *stats.Ledger, fields []string) {
	if len(fields) < 3 {
		fmt.Println("usage: login <email> <password>")
		return
	}
	ctx := context.Background()
	user, err := client.Login(ctx, fields[1], fields[2])
	if err != nil {
		fmt.Println("login failed:", err)
		return
	}
	fmt.Printf("logged in as %s\n", user.Email)

	syncproto.Merge(ctx, client, eng, rooms, ledger)
	eng.SetOutbox(syncproto.NewOutbox(client))
	fmt.Println("synced")
}

func handleRegister(client *remote.Client, eng *engine.Engine, rooms *room.Store, ledger *stats.Ledger, fields []string) {
	if len(fields) < 3 {
		fmt.Println("usage: register <email> <password>")
		return
	}
	ctx := context.Background()
	user, err := client.Register(ctx, fields[1], fields[2])
	if err != nil {
		fmt.Println("register failed:", err)
		return
	}
	fmt.Printf("registered %s\n", user.Email)

	syncproto.Merge(ctx, client, eng, rooms, ledger)
	eng.SetOutbox(syncproto.NewOutbox(client))
}

func printLeaderboard(client *remote.Client) {
	entries, err := client.Leaderboard(context.Background(), "pomodoros")
	if err != nil {
		fmt.Println("leaderboard unavailable:", err)
		return
	}
	for _, entry := range entries {
		fmt.Printf("%2d. %-20s %4d sessions  %5d min  streak %d\n",
			entry.Rank,
			entry.Profile.DisplayName,
			entry.Profile.TotalPomodoros,
			entry.Profile.TotalFocusMinutes,
			entry.Profile.CurrentStreak,
		)
	}
}

func printHelp() {
	fmt.Println(`timer:  start pause resume skip reset status
room:   shop buy <id> toggle <id> move <id> <u> <v> theme <name>
stats:  stats
cloud:  register <email> <pw>  login <email> <pw>  sync  leaderboard
other:  help quit`)
}
