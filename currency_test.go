package valutatrade

import (
	"errors"
	"slices"
	"testing"
)

func TestLookupCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		code     string
		wantCode string
		wantErr  bool
	}{
		{"exact", "BTC", "BTC", false},
		{"lowercase normalized", "btc", "BTC", false},
		{"whitespace trimmed", " eur ", "EUR", false},
		{"unknown", "XYZ", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cur, err := LookupCurrency(tc.code)
			if (err != nil) != tc.wantErr {
				t.Fatalf("LookupCurrency(%q) error = %v, want error %v", tc.code, err, tc.wantErr)
			}
			if tc.wantErr {
				var notFound *CurrencyNotFoundError
				if !errors.As(err, &notFound) {
					t.Errorf("error type = %T, want CurrencyNotFoundError", err)
				}
				return
			}
			if cur.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", cur.Code, tc.wantCode)
			}
		})
	}
}

func TestCodeSlicesSorted(t *testing.T) {
	for name, codes := range map[string][]string{
		"all":    SupportedCodes(),
		"fiat":   FiatCodes(),
		"crypto": CryptoCodes(),
	} {
		if !slices.IsSorted(codes) {
			t.Errorf("%s codes not sorted: %v", name, codes)
		}
		if len(codes) == 0 {
			t.Errorf("%s codes empty", name)
		}
	}
}

func TestCatalogKinds(t *testing.T) {
	if !IsSupported("USD") || !IsSupported("BTC") {
		t.Fatal("catalog must hold USD and BTC")
	}
	usd, _ := LookupCurrency("USD")
	if usd.Kind != Fiat {
		t.Errorf("USD kind = %v, want fiat", usd.Kind)
	}
	btc, _ := LookupCurrency("BTC")
	if btc.Kind != Crypto {
		t.Errorf("BTC kind = %v, want crypto", btc.Kind)
	}
	for cur := range AllCurrencies() {
		if cur.Code == "" || cur.Name == "" {
			t.Errorf("catalog entry incomplete: %+v", cur)
		}
	}
}
