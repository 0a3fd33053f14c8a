package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cast"

	"github.com/loganlanou/blindquote/internal/pricing"
	"github.com/loganlanou/blindquote/internal/quote"
	"github.com/loganlanou/blindquote/internal/templates"
)

// Renders both quote formats for a random order so template changes can be
// checked in a browser. TEMPLATE_DIR switches from the embedded templates to
// a working copy; SEED makes the order reproducible.

const numItems = 6

var (
	fabrics = []struct {
		name, code string
	}{
		{"Light-Filter Linen", "LF"},
		{"Screen 5% Charcoal", "SN"},
		{"Blockout Sable", "B1"},
		{"Blockout Thermal", "B3"},
		{"Sunscreen Ice", "SN"},
	}
	rooms = []string{"Lounge", "Kitchen", "Bed 1", "Bed 2", "Study", "Laundry", ""}
)

func main() {
	seed := cast.ToUint64(os.Getenv("SEED"))
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	faker := gofakeit.New(seed)

	outDir := os.Getenv("OUT_DIR")
	if outDir == "" {
		outDir = "./tmp/sample-quote"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	source := templates.NewFSSource(templates.Embedded())
	if dir := os.Getenv("TEMPLATE_DIR"); dir != "" {
		source = templates.NewDirSource(dir)
	}

	ctx := context.Background()
	store := templates.NewStore(source, nil)
	if err := store.Load(ctx); err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	order, err := json.Marshal(fakeOrder(faker))
	if err != nil {
		log.Fatalf("Failed to encode order: %v", err)
	}
	req := pricing.Request{Order: order}
	gen := quote.NewGenerator(pricing.NewPassThroughProvider(), store)

	html, ok, err := gen.GenerateQuoteHTML(ctx, req)
	if err != nil || !ok {
		log.Fatalf("Failed to render quote (ok=%v): %v", ok, err)
	}
	write(outDir, "quote.html", html)

	email, ok, err := gen.GenerateGmailQuoteHTML(ctx, req)
	if err != nil || !ok {
		log.Fatalf("Failed to render email (ok=%v): %v", ok, err)
	}
	write(outDir, "email.html", email)

	write(outDir, "order.json", string(order))
	fmt.Printf("✓ Sample quote written to %s (seed %d)\n", outDir, seed)
}

func fakeOrder(faker *gofakeit.Faker) map[string]any {
	var items []map[string]any
	total := 0.0
	for i := 0; i < numItems; i++ {
		fabric := fabrics[faker.IntRange(0, len(fabrics)-1)]
		item := map[string]any{
			"width":      faker.IntRange(400, 2800),
			"height":     faker.IntRange(400, 2800),
			"fabric":     fabric.name,
			"fabricType": fabric.code,
			"color":      faker.Color(),
			"location":   rooms[faker.IntRange(0, len(rooms)-1)],
			"motor":      faker.Bool(),
			"linePrice":  round(faker.Float64Range(90, 420)),
		}
		if faker.Bool() {
			item["winder"] = "HD"
		}
		if faker.Bool() {
			item["dual"] = "D"
		}
		// Every so often leave a row half filled in, the way the editor does.
		if faker.IntRange(0, 5) == 0 {
			delete(item, "height")
		} else {
			total += item["linePrice"].(float64)
		}
		items = append(items, item)
	}

	discount := faker.Float64Range(0.05, 0.2)
	acce := 0.0
	if faker.Bool() {
		acce = round(faker.Float64Range(20, 120))
	}
	eAcce := 0.0
	if faker.Bool() {
		eAcce = round(faker.Float64Range(150, 600))
	}

	sub := round(total*(1-discount)) + acce + eAcce + 40 + 120
	gst := round(sub * 0.1)
	grand := sub + gst
	issued := faker.DateRange(time.Now().AddDate(0, -1, 0), time.Now())

	return map[string]any{
		"quoteId":         fmt.Sprintf("RB%s", faker.Numerify("######")),
		"issueDate":       issued.Format("2006-01-02"),
		"dueDate":         issued.AddDate(0, 0, 14).Format("2006-01-02"),
		"customerName":    faker.Name(),
		"customerAddress": faker.Street() + "\n" + faker.City() + " " + faker.Zip(),
		"customerPhone":   faker.Phone(),
		"customerEmail":   faker.Email(),
		"subtotal":        quote.Money(sub),
		"gst":             quote.Money(gst),
		"grandTotal":      quote.Money(grand),
		"deposit":         quote.Money(round(grand / 2)),
		"balance":         quote.Money(grand - round(grand/2)),
		"ourOffer":        quote.Money(round(grand * 0.95)),
		"termsConditions": "Quote valid for 30 days. 50% deposit required to order.",
		"mulTimes":        1,
		"items":           items,
		"summaryData": map[string]any{
			"firstRbPrice": round(total),
			"disRbPrice":   round(total * (1 - discount)),
			"acceSum":      acce,
			"eAcceSum":     eAcce,
			"deliveryFee":  40,
			"installFee":   120,
			"removalFee":   0,
		},
	}
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

func write(dir, name, content string) {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", name, err)
	}
}
