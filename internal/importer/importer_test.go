package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
	err   error
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `Key,Name,Description,Price,Category,Stock,Image_URL
apples,Fresh Apples,Crisp red apples,120.50,Fruits,40,https://example.com/apples.jpg
,,,,,,
rice,Basmati Rice,,99,,,
`
	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(repo.items) != 2 {
		t.Fatalf("expected 2 products imported, got %d (%d saved)", count, len(repo.items))
	}

	apples := repo.items[0]
	if apples.Key != "apples" || apples.PriceCents != 12050 || apples.Category != "Fruits" || apples.Stock != 40 || apples.ImageURL != "https://example.com/apples.jpg" {
		t.Fatalf("unexpected product data: %+v", apples)
	}
	rice := repo.items[1]
	if rice.PriceCents != 9900 || rice.Stock != DefaultStock || rice.Category != "" {
		t.Fatalf("expected defaults on sparse row, got %+v", rice)
	}
}

func TestCSVImporter_RejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"missing column": "key,name\nx,y\n",
		"missing name":   "key,name,price\nx,,10\n",
		"bad price":      "key,name,price\nx,X,ten\n",
		"too precise":    "key,name,price\nx,X,1.005\n",
		"negative price": "key,name,price\nx,X,-1\n",
		"negative stock": "key,name,price,stock\nx,X,1,-4\n",
		"non-int stock":  "key,name,price,stock\nx,X,1,many\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubProductRepo{}
			if _, err := NewCSVImporter(strings.NewReader(data), repo).Run(context.Background()); err == nil {
				t.Fatalf("expected error")
			}
			if len(repo.items) != 0 {
				t.Fatalf("expected nothing saved, got %+v", repo.items)
			}
		})
	}
}

func TestCSVImporter_StopsOnWriteError(t *testing.T) {
	repo := &stubProductRepo{err: errors.New("db down")}
	count, err := NewCSVImporter(strings.NewReader("key,name,price\nx,X,1\n"), repo).Run(context.Background())
	if err == nil || count != 0 {
		t.Fatalf("expected write error, got count=%d err=%v", count, err)
	}
}
