package main

import (
	"billiard-live/auth"
	"billiard-live/domain"
	"billiard-live/repositories"
	"billiard-live/services"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=12h"`
}

// Seeds two players, a scorekeeper and a match, then prints a token for each profile.
func main() {
	framesToWin := flag.Int("frames", domain.DefaultFramesToWin, "frames_to_win of the seeded match")
	player1 := flag.String("player1", "Efren Reyes", "first player")
	player2 := flag.String("player2", "Earl Strickland", "second player")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	logger := logs.GetLoggerFromLevel(slog.LevelWarn)

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	ids, err := repositories.NewIDGenerator(db, 10)
	if err != nil {
		log.Fatalf("Failed to lease ids: %v", err)
	}
	defer func() { _ = ids.Release() }()

	profiles := repositories.NewProfileRepository(db, ids)
	matches := repositories.NewMatchRepository(db, ids, logger)
	authService := services.NewAuthService(auth.NewTokenService(config.JWTSecret, config.AuthTokenDuration), profiles)

	p1 := mustProfile(profiles, splitName(*player1))
	p2 := mustProfile(profiles, splitName(*player2))
	biro := mustProfile(profiles, domain.Profile{Username: "biro", IsBiro: true})

	match, err := matches.CreateMatch(domain.Match{
		Player1:     p1.ID,
		Player2:     p2.ID,
		FramesToWin: *framesToWin,
		GameMode:    domain.EightBall,
	})
	if err != nil {
		log.Fatalf("Failed to create match: %v", err)
	}

	color.Green.Printf("Match %d seeded (best of %d)\n\n", match.ID, match.FramesToWin)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Profile", "Name", "Biro", "Token"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, p := range []domain.Profile{p1, p2, biro} {
		token, err := authService.IssueToken(p.ID)
		if err != nil {
			log.Fatalf("Failed to issue token for %d: %v", p.ID, err)
		}
		table.Append([]string{strconv.FormatInt(int64(p.ID), 10), p.DisplayName(), strconv.FormatBool(p.IsBiro), token})
	}
	table.Render()

	fmt.Println()
	color.Cyan.Printf("Spectate:   /ws/match/%d/\n", match.ID)
	color.Yellow.Printf("Scorekeep:  /ws/biro/match/%d/?token=<biro token>\n", match.ID)
}

func mustProfile(profiles *repositories.ProfileRepository, p domain.Profile) domain.Profile {
	created, err := profiles.CreateProfile(p)
	if err != nil {
		log.Fatalf("Failed to create profile: %v", err)
	}
	return created
}

func splitName(full string) domain.Profile {
	for i, r := range full {
		if r == ' ' {
			return domain.Profile{FirstName: full[:i], LastName: full[i+1:]}
		}
	}
	return domain.Profile{Username: full}
}
