package main

import (
	"encoding/json"
	"testing"

	"tqm/internal/authgate"
	"tqm/internal/models"
	"tqm/internal/testutil"
)

func TestListProducts(t *testing.T) {
	setupTestApp(t)
	mux := newMux()

	w := doJSON(t, mux, "GET", "/api/v1/products", nil)
	if w.Code != 200 {
		t.Fatalf("List = %d", w.Code)
	}
	var products []models.Product
	decodeData(t, w, &products)
	if len(products) == 0 {
		t.Error("Expected seeded products")
	}
}

func TestCreateProductAsAdmin(t *testing.T) {
	setupTestApp(t)
	mux := newMux()
	gate.Login(authgate.RoleAdmin)
	before := len(appStore.Products())

	w := doJSON(t, mux, "POST", "/api/v1/products", models.Product{Name: "ضاغط هواء"})
	if w.Code != 200 {
		t.Fatalf("Create = %d: %s", w.Code, w.Body)
	}
	if len(appStore.Products()) != before+1 {
		t.Errorf("Product count = %d, want %d", len(appStore.Products()), before+1)
	}
}

func TestCreateProductValidation(t *testing.T) {
	setupTestApp(t)
	mux := newMux()
	gate.Login(authgate.RoleAdmin)

	w := doJSON(t, mux, "POST", "/api/v1/products", models.Product{})
	if w.Code != 400 {
		t.Errorf("Create without name = %d, want 400", w.Code)
	}

	w = doJSON(t, mux, "POST", "/api/v1/products", models.Product{Name: "x", Status: "broken"})
	if w.Code != 400 {
		t.Errorf("Create with bad status = %d, want 400", w.Code)
	}
}

func TestGuestMutationChallengedThenConfirmed(t *testing.T) {
	setupTestApp(t)
	mux := newMux()
	gate.Login(authgate.RoleGuest)
	before := len(appStore.Products())

	w := doJSON(t, mux, "POST", "/api/v1/products", models.Product{Name: "قيد التأكيد"})
	if w.Code != 401 {
		t.Fatalf("Guest create = %d, want 401", w.Code)
	}
	var challenge map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &challenge); err != nil {
		t.Fatalf("Failed to decode challenge: %v", err)
	}
	if challenge["code"] != "PASSPHRASE_REQUIRED" {
		t.Errorf("Challenge code = %q", challenge["code"])
	}
	if len(appStore.Products()) != before {
		t.Fatal("Challenged mutation ran early")
	}

	w = doJSON(t, mux, "POST", "/auth/confirm", map[string]string{"passphrase": testutil.Passphrase})
	if w.Code != 200 {
		t.Fatalf("Confirm = %d: %s", w.Code, w.Body)
	}
	if len(appStore.Products()) != before+1 {
		t.Errorf("Product count after confirm = %d, want %d", len(appStore.Products()), before+1)
	}
}

func TestGuestMutationCancelled(t *testing.T) {
	setupTestApp(t)
	mux := newMux()
	gate.Login(authgate.RoleGuest)
	before := len(appStore.Products())

	doJSON(t, mux, "POST", "/api/v1/products", models.Product{Name: "ملغى"})
	doJSON(t, mux, "POST", "/auth/cancel", nil)
	doJSON(t, mux, "POST", "/auth/confirm", map[string]string{"passphrase": testutil.Passphrase})

	if len(appStore.Products()) != before {
		t.Error("Cancelled mutation ran")
	}
}

func TestDeleteProduct(t *testing.T) {
	setupTestApp(t)
	mux := newMux()
	gate.Login(authgate.RoleAdmin)

	p := appStore.AddProduct(models.Product{Name: "سيحذف"})
	before := len(appStore.Products())

	w := doJSON(t, mux, "DELETE", "/api/v1/products/"+p.ID, nil)
	if w.Code != 200 {
		t.Fatalf("Delete = %d", w.Code)
	}
	if len(appStore.Products()) != before-1 {
		t.Errorf("Product count = %d, want %d", len(appStore.Products()), before-1)
	}
}
