package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/models"
	"shopapi/internal/servererrors"
)

type fakeRepo struct {
	products   map[uint]*models.Product
	items      map[uint]*models.ProductItem
	nextID     uint
	nextItemID uint

	failCreateItem   bool
	failUpdateFields bool
	afterTx          func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: map[uint]*models.Product{},
		items:    map[uint]*models.ProductItem{},
	}
}

func (f *fakeRepo) ListWithItems(ctx context.Context) ([]models.Product, error) {
	ids := make([]uint, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, _ := f.FindByIDWithItems(ctx, id)
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) FindByIDWithItems(ctx context.Context, id uint) (*models.Product, error) {
	p, err := f.FindByID(ctx, id)
	if p == nil || err != nil {
		return p, err
	}
	p.Items = f.itemsFor(id)
	return p, nil
}

func (f *fakeRepo) itemsFor(productID uint) []models.ProductItem {
	var out []models.ProductItem
	for _, it := range f.items {
		if it.ProductID == productID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRepo) Create(_ context.Context, p *models.Product) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateFields(_ context.Context, id uint, fields map[string]any) error {
	if f.failUpdateFields {
		return errors.New("update failed")
	}
	p, ok := f.products[id]
	if !ok {
		return errors.New("no such product")
	}
	for k, v := range fields {
		switch k {
		case "category_id":
			p.CategoryID = v.(uint)
		case "store_id":
			p.StoreID = v.(uint)
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "price":
			p.Price = v.(float64)
		case "image_path":
			p.ImagePath = v.(string)
		default:
			return fmt.Errorf("unexpected field %q", k)
		}
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) FirstItem(_ context.Context, productID uint) (*models.ProductItem, error) {
	items := f.itemsFor(productID)
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (f *fakeRepo) CreateItem(_ context.Context, item *models.ProductItem) error {
	if f.failCreateItem {
		return errors.New("create item failed")
	}
	f.nextItemID++
	item.ID = f.nextItemID
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeRepo) SetItemQuantity(_ context.Context, itemID uint, qty int) error {
	it, ok := f.items[itemID]
	if !ok {
		return errors.New("no such item")
	}
	it.QuantityInStock = qty
	return nil
}

func (f *fakeRepo) DeleteItems(_ context.Context, productID uint) error {
	for id, it := range f.items {
		if it.ProductID == productID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(Repository) error) error {
	if err := fn(f); err != nil {
		return err
	}
	if f.afterTx != nil {
		f.afterTx()
	}
	return nil
}

type fakeRefs struct {
	categories map[uint]bool
	stores     map[uint]bool
	checkErr   error
}

func (f *fakeRefs) CategoryExists(_ context.Context, id uint) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.categories[id], nil
}

func (f *fakeRefs) StoreExists(_ context.Context, id uint) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.stores[id], nil
}

type fakeFiles struct {
	puts    int
	stored  map[string]bool
	deleted []string
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{stored: map[string]bool{}}
}

func (f *fakeFiles) Put(_ []byte, ext, folder string) (string, error) {
	f.puts++
	key := fmt.Sprintf("%s/img-%d%s", folder, f.puts, ext)
	f.stored[key] = true
	return key, nil
}

func (f *fakeFiles) Delete(key string) error {
	delete(f.stored, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeFiles) URL(key string) string {
	if key == "" {
		return ""
	}
	return "http://shop.test/uploads/" + key
}

func newTestService() (*Service, *fakeRepo, *fakeFiles) {
	repo := newFakeRepo()
	refs := &fakeRefs{categories: map[uint]bool{1: true}, stores: map[uint]bool{1: true}}
	files := newFakeFiles()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(repo, refs, files, log), repo, files
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func TestCreateWithImageAndStock(t *testing.T) {
	svc, repo, files := newTestService()

	qty := 10
	p, item, err := svc.Create(context.Background(), CreateInput{
		CategoryID:      1,
		StoreID:         1,
		Name:            "Pen",
		Price:           f64(2.5),
		QuantityInStock: &qty,
	}, &ImageUpload{Filename: "pen.png", Size: 100, Data: []byte("png")}, 42)
	require.NoError(t, err)

	assert.Equal(t, 2.5, p.Price)
	assert.Equal(t, uint(42), p.UserID)
	assert.NotEmpty(t, p.ImagePath)
	assert.True(t, files.stored[p.ImagePath])

	require.NotNil(t, item)
	assert.Equal(t, p.ID, item.ProductID)
	assert.Equal(t, 10, item.QuantityInStock)
	assert.Len(t, repo.itemsFor(p.ID), 1)
}

func TestCreateResponseHidesStorageKey(t *testing.T) {
	svc, _, files := newTestService()

	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(2.5),
	}, &ImageUpload{Filename: "pen.jpg", Size: 10, Data: []byte("jpg")}, 1)
	require.NoError(t, err)

	body, err := json.Marshal(Present(p, files))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotContains(t, out, "product_image")
	assert.NotContains(t, out, "image_path")
	assert.Equal(t, "http://shop.test/uploads/"+p.ImagePath, out["product_image_url"])
}

func TestCreateWithoutImageHasNoURL(t *testing.T) {
	svc, _, files := newTestService()

	p, item, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(2.5),
	}, nil, 1)
	require.NoError(t, err)
	assert.Empty(t, p.ImagePath)
	assert.Equal(t, 0, item.QuantityInStock, "quantity defaults to 0")

	body, _ := json.Marshal(Present(p, files))
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotContains(t, out, "product_image_url")
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 99, StoreID: 99, Name: "Pen", Price: f64(1),
	}, nil, 1)

	var verr *servererrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_id")
	assert.Contains(t, verr.Fields, "store_id")
}

func TestCreateRejectsWideFormatsAllowedOnUpdate(t *testing.T) {
	svc, _, files := newTestService()

	_, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(1),
	}, &ImageUpload{Filename: "pen.gif", Size: 10, Data: []byte("gif")}, 1)

	var verr *servererrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "product_image")
	assert.Zero(t, files.puts, "rejected image must not be stored")
}

func TestCreateCleansUpImageWhenPersistFails(t *testing.T) {
	svc, repo, files := newTestService()
	repo.failCreateItem = true

	_, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(1),
	}, &ImageUpload{Filename: "pen.png", Size: 10, Data: []byte("png")}, 1)
	require.Error(t, err)

	assert.Empty(t, files.stored, "stored image must be removed after a failed create")
	assert.Len(t, files.deleted, 1)
}

func TestCreatePropagatesReferenceCheckFailure(t *testing.T) {
	repo := newFakeRepo()
	refs := &fakeRefs{checkErr: errors.New("connection refused")}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewService(repo, refs, newFakeFiles(), log)

	_, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(1),
	}, nil, 1)

	require.Error(t, err)
	var verr *servererrors.ValidationError
	assert.False(t, errors.As(err, &verr), "a lookup failure is not a validation failure")
	assert.ErrorIs(t, err, refs.checkErr)
}

func TestCreateAcceptsMultibyteNameOfMaxLength(t *testing.T) {
	svc, _, _ := newTestService()

	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: strings.Repeat("é", 255), Price: f64(1),
	}, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 255), p.Name)

	_, _, err = svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: strings.Repeat("é", 256), Price: f64(1),
	}, nil, 1)
	var verr *servererrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestGetNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, servererrors.ErrNotFound)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Update(context.Background(), 7, UpdateInput{Price: f64(1)}, nil)
	assert.ErrorIs(t, err, servererrors.ErrNotFound)
}

func TestUpdateQuantityMutatesExistingItemInPlace(t *testing.T) {
	svc, repo, _ := newTestService()
	qty := 10
	p, item, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(2.5), QuantityInStock: &qty,
	}, nil, 1)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{QuantityInStock: intp(0)}, nil)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1, "stock record must not be recreated")
	assert.Equal(t, item.ID, updated.Items[0].ID)
	assert.Equal(t, 0, updated.Items[0].QuantityInStock)
	assert.Len(t, repo.itemsFor(p.ID), 1)
}

func TestUpdateQuantityCreatesItemWhenNoneExists(t *testing.T) {
	svc, repo, _ := newTestService()
	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(2.5),
	}, nil, 1)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteItems(context.Background(), p.ID))

	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{QuantityInStock: intp(3)}, nil)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].QuantityInStock)
}

func TestUpdateReplacesImage(t *testing.T) {
	svc, _, files := newTestService()
	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(2.5),
	}, &ImageUpload{Filename: "a.png", Size: 10, Data: []byte("a")}, 1)
	require.NoError(t, err)
	oldKey := p.ImagePath

	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{},
		&ImageUpload{Filename: "b.gif", Size: 10, Data: []byte("b")})
	require.NoError(t, err)

	assert.NotEqual(t, oldKey, updated.ImagePath)
	assert.Contains(t, files.deleted, oldKey, "old object must be deleted")
	assert.True(t, files.stored[updated.ImagePath])
	assert.False(t, files.stored[oldKey])
}

func TestUpdateCleansUpNewImageWhenPersistFails(t *testing.T) {
	svc, repo, files := newTestService()
	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(1),
	}, &ImageUpload{Filename: "a.png", Size: 10, Data: []byte("a")}, 1)
	require.NoError(t, err)

	repo.failUpdateFields = true
	_, err = svc.Update(context.Background(), p.ID, UpdateInput{},
		&ImageUpload{Filename: "b.png", Size: 10, Data: []byte("b")})
	require.Error(t, err)

	assert.Empty(t, files.stored, "new image must be removed after a failed update")
	assert.Len(t, files.deleted, 2, "both the replaced and the new object are deleted")
}

func TestUpdateReturnsNotFoundWhenProductVanishes(t *testing.T) {
	svc, repo, _ := newTestService()
	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(1),
	}, nil, 1)
	require.NoError(t, err)

	// simulate a concurrent delete landing between the write and the re-read
	repo.afterTx = func() { delete(repo.products, p.ID) }

	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{Price: f64(2)}, nil)
	assert.ErrorIs(t, err, servererrors.ErrNotFound)
	assert.Nil(t, updated)
}

func TestUpdateRejectsOversizedImage(t *testing.T) {
	svc, _, _ := newTestService()
	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(2.5),
	}, nil, 1)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), p.ID, UpdateInput{},
		&ImageUpload{Filename: "big.png", Size: 6 << 20, Data: []byte("x")})

	var verr *servererrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "product_image")
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _, _ := newTestService()
	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Description: "blue ink", Price: f64(2.5),
	}, nil, 1)
	require.NoError(t, err)

	name := "Pencil"
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{Name: &name}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Pencil", updated.Name)
	assert.Equal(t, "blue ink", updated.Description, "untouched fields survive")
	assert.Equal(t, 2.5, updated.Price)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc, repo, _ := newTestService()
	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(2.5),
	}, nil, 42)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), p.ID, 7)
	assert.ErrorIs(t, err, servererrors.ErrForbidden)

	still, _ := repo.FindByID(context.Background(), p.ID)
	require.NotNil(t, still, "record must be unchanged after a forbidden delete")
	assert.Equal(t, "Pen", still.Name)
}

func TestDeleteNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.Delete(context.Background(), 404, 1)
	assert.ErrorIs(t, err, servererrors.ErrNotFound)
}

func TestDeleteRemovesImageAndStockRecords(t *testing.T) {
	svc, repo, files := newTestService()
	qty := 5
	p, _, err := svc.Create(context.Background(), CreateInput{
		CategoryID: 1, StoreID: 1, Name: "Pen", Price: f64(2.5), QuantityInStock: &qty,
	}, &ImageUpload{Filename: "pen.webp", Size: 10, Data: []byte("w")}, 42)
	require.NoError(t, err)
	key := p.ImagePath

	require.NoError(t, svc.Delete(context.Background(), p.ID, 42))

	gone, _ := repo.FindByID(context.Background(), p.ID)
	assert.Nil(t, gone)
	assert.Empty(t, repo.itemsFor(p.ID), "stock records are cascade-deleted")
	assert.Contains(t, files.deleted, key)
}
