package catalogs

import (
	"testing"
)

func TestCatalogModes(t *testing.T) {
	t.Run("MemoryCatalog", func(t *testing.T) {
		cat, err := New()
		if err != nil {
			t.Fatalf("Failed to create memory catalog: %v", err)
		}

		brand := Brand{Tag: "test_bank", Name: "Test Bank", Countries: []string{"GB"}}
		if err := cat.SetBrand(brand); err != nil {
			t.Fatalf("Failed to set brand: %v", err)
		}

		got, err := cat.Brand("test_bank")
		if err != nil {
			t.Fatalf("Brand lookup failed: %v", err)
		}
		if got.Name != "Test Bank" {
			t.Errorf("Expected name 'Test Bank', got %q", got.Name)
		}
	})

	t.Run("FileCatalogRoundTrip", func(t *testing.T) {
		dir := t.TempDir()

		cat, err := New(WithPath(dir))
		if err != nil {
			t.Fatalf("Failed to create file catalog: %v", err)
		}

		brandTag := "green_bank"
		if err := cat.SetBrand(Brand{Tag: brandTag, Name: "Green Bank", Countries: []string{"NZ", "AU"}}); err != nil {
			t.Fatalf("SetBrand: %v", err)
		}
		if err := cat.SetDatasource(Datasource{
			Provider: ProviderBanktrack,
			SourceID: "gb-123",
			Tag:      "banktrack_green_bank",
			Name:     "Green Bank",
			BrandTag: &brandTag,
		}); err != nil {
			t.Fatalf("SetDatasource: %v", err)
		}
		if err := cat.SetCommentary(Commentary{BrandTag: brandTag, Rating: RatingGood}); err != nil {
			t.Fatalf("SetCommentary: %v", err)
		}
		cat.Suggestions().Add(SuggestedAssociation{
			Datasource: DatasourceKey{Provider: ProviderWikidata, SourceID: "Q42"},
			BrandTag:   brandTag,
			Certainty:  2,
		})

		if err := cat.Save(); err != nil {
			t.Fatalf("Save: %v", err)
		}

		reloaded, err := NewFromPath(dir)
		if err != nil {
			t.Fatalf("NewFromPath: %v", err)
		}

		brand, err := reloaded.Brand(brandTag)
		if err != nil {
			t.Fatalf("reloaded brand: %v", err)
		}
		if len(brand.Countries) != 2 {
			t.Errorf("Expected 2 countries after reload, got %v", brand.Countries)
		}

		ds, err := reloaded.Datasource(DatasourceKey{Provider: ProviderBanktrack, SourceID: "gb-123"})
		if err != nil {
			t.Fatalf("reloaded datasource: %v", err)
		}
		if !ds.LinkedTo(brandTag) {
			t.Error("datasource should still link to brand after reload")
		}

		c, err := reloaded.Commentary(brandTag)
		if err != nil {
			t.Fatalf("reloaded commentary: %v", err)
		}
		if c.Rating != RatingGood {
			t.Errorf("Expected rating good, got %s", c.Rating)
		}

		if reloaded.Suggestions().Len() != 1 {
			t.Errorf("Expected 1 suggestion after reload, got %d", reloaded.Suggestions().Len())
		}
	})
}

func TestSetBrandValidates(t *testing.T) {
	cat := NewEmpty()

	if err := cat.SetBrand(Brand{Tag: "Bad Tag!"}); err == nil {
		t.Error("expected validation error for invalid tag")
	}

	subs := make([]Subsidiary, MaxSubsidiaries+1)
	for i := range subs {
		subs[i] = Subsidiary{BrandTag: "parent", Percent: 10}
	}
	if err := cat.SetBrand(Brand{Tag: "ok_tag", Subsidiaries: subs}); err == nil {
		t.Error("expected validation error for too many subsidiaries")
	}
}

func TestSetDatasourceRejectsUnknownProvider(t *testing.T) {
	cat := NewEmpty()

	err := cat.SetDatasource(Datasource{Provider: Provider("acme"), SourceID: "1"})
	if err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}

func TestTagsUniverse(t *testing.T) {
	cat := NewEmpty()
	_ = cat.SetBrand(Brand{Tag: "alpha_bank"})
	_ = cat.SetDatasource(Datasource{Provider: ProviderGabv, SourceID: "a1", Tag: "gabv_alpha_bank"})

	tags := cat.Tags()
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %v", tags)
	}
}

func TestCopyIsDeep(t *testing.T) {
	cat := NewEmpty()
	_ = cat.SetBrand(Brand{Tag: "alpha_bank", Countries: []string{"DE"}})

	cp, err := cat.Copy()
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}

	// Mutating the copy must not leak into the original.
	b, _ := cp.Brand("alpha_bank")
	b.AddCountries("FR")
	_ = cp.SetBrand(b)

	orig, _ := cat.Brand("alpha_bank")
	if len(orig.Countries) != 1 {
		t.Errorf("original mutated through copy: %v", orig.Countries)
	}
}

func TestSuggestionsReplaceFor(t *testing.T) {
	s := NewSuggestions()
	key := DatasourceKey{Provider: ProviderBocc, SourceID: "77"}

	s.ReplaceFor(key, []SuggestedAssociation{
		{Datasource: key, BrandTag: "b_two", Certainty: 2},
		{Datasource: key, BrandTag: "a_one", Certainty: 1},
	})
	s.ReplaceFor(key, []SuggestedAssociation{
		{Datasource: key, BrandTag: "c_three", Certainty: 0},
	})

	rows := s.For(key)
	if len(rows) != 1 || rows[0].BrandTag != "c_three" {
		t.Errorf("ReplaceFor should fully replace prior rows, got %v", rows)
	}
}
