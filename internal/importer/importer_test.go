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
	csvData := `id,name,description,price,category,stock,imageUrl
1,Camiseta Básica Blanca,"Algodón, corte regular",25.99,Camisetas,15,https://example.com/1.jpg

,Gorra,,12.5,Accesorios,,
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

	first := repo.items[0]
	if first.ID != "1" || first.Description != "Algodón, corte regular" || first.Price.String() != "25.99" || first.Stock != 15 || first.ImageURL != "https://example.com/1.jpg" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	second := repo.items[1]
	if second.ID != "" || second.Stock != 0 || second.Category != "Accesorios" {
		t.Fatalf("unexpected defaults on second product: %+v", second)
	}
}

func TestCSVImporter_ColumnOrderIsFree(t *testing.T) {
	csvData := "price,name\n9.90,Calcetines\n"
	repo := &stubProductRepo{}
	count, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if err != nil || count != 1 || repo.items[0].Name != "Calcetines" {
		t.Fatalf("unexpected result count=%d err=%v items=%+v", count, err, repo.items)
	}
}

func TestCSVImporter_RejectsInvalidRows(t *testing.T) {
	cases := map[string]string{
		"bad price":      "name,price\nGorra,doce\n",
		"negative price": "name,price\nGorra,-1\n",
		"missing name":   "name,price\n,10\n",
		"bad stock":      "name,price,stock\nGorra,10,muchos\n",
	}
	for name, data := range cases {
		repo := &stubProductRepo{}
		_, err := NewCSVImporter(strings.NewReader(data), repo).Run(context.Background())
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
		if !strings.Contains(err.Error(), "line 2") {
			t.Fatalf("%s: expected line number in %q", name, err)
		}
		if len(repo.items) != 0 {
			t.Fatalf("%s: nothing should be saved", name)
		}
	}
}

func TestCSVImporter_MissingColumns(t *testing.T) {
	_, err := NewCSVImporter(strings.NewReader("id,name\n1,x\n"), &stubProductRepo{}).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), `"price"`) {
		t.Fatalf("expected missing price column error, got %v", err)
	}
}

func TestCSVImporter_StopsOnWriteError(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewCSVImporter(strings.NewReader("name,price\nGorra,10\n"), &stubProductRepo{err: boom}).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
}
