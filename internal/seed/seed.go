package seed

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Key         string
	Name        string
	Description string
	PriceCents  int64
	Category    string
	ImageURL    string
}

type charitySeed struct {
	Name        string
	Description string
	Website     string
}

const (
	adminUsername = "admin"
	adminEmail    = "admin@grocery.com"
	adminPassword = "admin123"
)

var products = []productSeed{
	{Key: "fresh-apples-1kg", Name: "Fresh Apples (1kg)", Description: "Crisp and sweet red apples.", PriceCents: 12000, Category: "Fruits", ImageURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/1/15/Red_Apple.jpg/800px-Red_Apple.jpg"},
	{Key: "bananas-1-dozen", Name: "Bananas (1 dozen)", Description: "Ripe bananas full of potassium.", PriceCents: 6000, Category: "Fruits", ImageURL: "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcSiph_r-pTwfrGBghkxIdd3PEz0Z_oqH7wTeA&s"},
	{Key: "whole-wheat-bread", Name: "Whole Wheat Bread", Description: "Soft and healthy bread loaf.", PriceCents: 4500, Category: "Bakery", ImageURL: "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcS3tzH2DPXSqmbOn3ygcB5KI5q-CIMbY3aQqA&s"},
	{Key: "organic-milk-1l", Name: "Organic Milk (1L)", Description: "Farm fresh organic milk.", PriceCents: 7000, Category: "Dairy", ImageURL: "https://mea.arla.com/4970d5/globalassets/arla-organic-milk/general/arla_organic_milk-product_range.jpg"},
	{Key: "brown-eggs-12pc", Name: "Brown Eggs (12pc)", Description: "Free-range brown eggs.", PriceCents: 8500, Category: "Dairy", ImageURL: "https://cdn.britannica.com/94/151894-050-F72A5317/Brown-eggs.jpg"},
	{Key: "basmati-rice-5kg", Name: "Basmati Rice (5kg)", Description: "Long-grain aromatic rice.", PriceCents: 52000, Category: "Grains", ImageURL: "https://flourworks.in/wp-content/uploads/2023/06/1-12.jpeg"},
	{Key: "notebook-200-pages", Name: "Notebook (200 pages)", Description: "College ruled notebook.", PriceCents: 5000, Category: "Stationary", ImageURL: "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcSgONwv10P8D4pN_96QMbOVUlG63DXVFPgpHg&s"},
	{Key: "ballpoint-pen-5-pack", Name: "Ballpoint Pen (Pack of 5)", Description: "Smooth writing pens.", PriceCents: 3000, Category: "Stationary", ImageURL: "https://static2.jetpens.com/images/a/000/253/253360.jpg?s=4378aba1d97fd5134ee408f1e42e5e9c"},
	{Key: "fresh-carrots-1kg", Name: "Fresh Carrots (1kg)", Description: "Organic carrots.", PriceCents: 4000, Category: "Vegetables", ImageURL: "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcTWp3Vx2S_zSSRoLboLpODBfF2QR-HOXcKFKg&s"},
	{Key: "tomatoes-1kg", Name: "Tomatoes (1kg)", Description: "Fresh red tomatoes.", PriceCents: 3500, Category: "Vegetables", ImageURL: "https://media.post.rvohealth.io/wp-content/uploads/2020/09/AN313-Tomatoes-732x549-Thumb.jpg"},
}

var charities = []charitySeed{
	{Name: "Feed the Hungry", Description: "Providing meals to underprivileged families", Website: "https://feedthehungry.org"},
	{Name: "Education for All", Description: "Supporting education for disadvantaged children", Website: "https://educationforall.org"},
	{Name: "Clean Water Foundation", Description: "Bringing clean water to rural communities", Website: "https://cleanwater.org"},
	{Name: "Medical Aid Society", Description: "Providing healthcare to those in need", Website: "https://medicalaid.org"},
	{Name: "Environmental Care", Description: "Protecting our environment for future generations", Website: "https://environmentalcare.org"},
}

// Apply seeds the admin account, the baseline catalog and the charity list.
// Each step only writes when its table has no matching rows, so re-running is safe.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	created, err := ensureAdmin(ctx, pool)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		logger.Printf("seed: admin user created username=%s", adminUsername)
	}

	n, err := seedProducts(ctx, pool)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	logger.Printf("seed: products inserted=%d", n)

	n, err = seedCharities(ctx, pool)
	if err != nil {
		return fmt.Errorf("seed charities: %w", err)
	}
	logger.Printf("seed: charities inserted=%d", n)
	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, adminUsername).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	const q = `
INSERT INTO users (name, username, email, password_hash, address, contact_number, is_admin)
VALUES ('Administrator', $1, $2, $3, 'Admin Office', '1234567890', TRUE)
ON CONFLICT DO NOTHING
`
	cmd, err := pool.Exec(ctx, q, adminUsername, adminEmail, string(hashed))
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	const q = `
INSERT INTO products (key, name, description, price_cents, category, image_url)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (key) DO NOTHING
`
	inserted := 0
	for _, p := range products {
		cmd, err := pool.Exec(ctx, q, p.Key, p.Name, p.Description, p.PriceCents, p.Category, p.ImageURL)
		if err != nil {
			return inserted, fmt.Errorf("insert product %s: %w", p.Key, err)
		}
		inserted += int(cmd.RowsAffected())
	}
	return inserted, nil
}

func seedCharities(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM charities`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	inserted := 0
	for _, c := range charities {
		if _, err := pool.Exec(ctx, `INSERT INTO charities (name, description, website) VALUES ($1, $2, $3)`, c.Name, c.Description, c.Website); err != nil {
			return inserted, fmt.Errorf("insert charity %s: %w", c.Name, err)
		}
		inserted++
	}
	return inserted, nil
}
