// Dev seeder: registers a handful of fake users, makes them friends, uploads
// a waffle for each and sprinkles comments, all through the public API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"waffle-service/pkg/client"
)

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	baseURL := os.Getenv("WAFFLE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	type seeded struct {
		c      *client.Client
		userID string
		name   string
	}

	var accounts []seeded
	for i := 0; i < 5; i++ {
		c := client.New(baseURL)
		name := gofakeit.Name()
		phone := fmt.Sprintf("+1%d", gofakeit.Number(2000000000, 9999999999))
		auth, err := c.Register(ctx, phone, name)
		if err != nil {
			log.Fatalf("register %s: %v", name, err)
		}
		accounts = append(accounts, seeded{c: c, userID: auth.User.ID, name: name})
		log.Printf("registered %s (%s)", name, auth.User.ID)
	}

	// Everyone befriends everyone else.
	for i, a := range accounts {
		for j, b := range accounts {
			if i == j {
				continue
			}
			if _, err := a.c.AddFriend(ctx, b.userID); err != nil {
				log.Printf("add friend: %v", err)
			}
		}
	}

	// One waffle each, plus a couple of comments from friends.
	for i, a := range accounts {
		audio := []byte(gofakeit.Sentence(30))
		w, err := a.c.UploadWaffle(ctx, audio, float64(gofakeit.Number(5, 60)))
		if err != nil {
			log.Fatalf("upload for %s: %v", a.name, err)
		}
		log.Printf("%s posted waffle %s for %s", a.name, w.ID, w.WednesdayDate)

		for k := 1; k <= 2; k++ {
			friend := accounts[(i+k)%len(accounts)]
			if _, err := friend.c.PostComment(ctx, w.ID, gofakeit.HipsterSentence(6)); err != nil {
				log.Printf("comment: %v", err)
			}
		}
	}

	// A private reply between the first two accounts.
	if len(accounts) >= 2 {
		if _, err := accounts[0].c.SendReply(ctx, accounts[1].userID,
			[]byte(gofakeit.Sentence(20)), float64(gofakeit.Number(5, 30))); err != nil {
			log.Printf("reply: %v", err)
		}
	}

	log.Println("seeding complete")
}
