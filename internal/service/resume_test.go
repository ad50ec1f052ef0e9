package service_test

import (
	"context"
	"testing"

	"github.com/pngalemo/portfolio/internal/apperr"
	"github.com/pngalemo/portfolio/internal/models"
	"github.com/pngalemo/portfolio/internal/service"
)

type mockResumeRepo struct {
	ListResumeItemsFunc  func(ctx context.Context, category models.Category) ([]models.ResumeItem, error)
	GetResumeItemFunc    func(ctx context.Context, id string) (*models.ResumeItem, error)
	CreateResumeItemFunc func(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error)
	UpdateResumeItemFunc func(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error)
	DeleteResumeItemFunc func(ctx context.Context, id string) error
}

func (m *mockResumeRepo) ListResumeItems(ctx context.Context, category models.Category) ([]models.ResumeItem, error) {
	return m.ListResumeItemsFunc(ctx, category)
}
func (m *mockResumeRepo) GetResumeItem(ctx context.Context, id string) (*models.ResumeItem, error) {
	return m.GetResumeItemFunc(ctx, id)
}
func (m *mockResumeRepo) CreateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
	return m.CreateResumeItemFunc(ctx, item)
}
func (m *mockResumeRepo) UpdateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
	return m.UpdateResumeItemFunc(ctx, item)
}
func (m *mockResumeRepo) DeleteResumeItem(ctx context.Context, id string) error {
	return m.DeleteResumeItemFunc(ctx, id)
}

func TestResumeList_EmptyFilterReturnsFullSeed(t *testing.T) {
	var gotCategory models.Category
	repo := &mockResumeRepo{
		ListResumeItemsFunc: func(_ context.Context, category models.Category) ([]models.ResumeItem, error) {
			gotCategory = category
			return nil, nil
		},
	}
	svc := service.NewResumeService(repo)

	got, err := svc.List(context.Background(), models.CategoryAward)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if gotCategory != models.CategoryAward {
		t.Errorf("store filter = %q; want Award", gotCategory)
	}
	wantIDs := []string{service.SeedExperienceID, service.SeedEducationID, service.SeedSkillID}
	if len(got) != len(wantIDs) {
		t.Fatalf("List len = %d; want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("List[%d].ID = %q; want %q", i, got[i].ID, id)
		}
	}
}

func TestResumeList_Sorted(t *testing.T) {
	repo := &mockResumeRepo{
		ListResumeItemsFunc: func(context.Context, models.Category) ([]models.ResumeItem, error) {
			return []models.ResumeItem{
				{ID: "skill", Category: models.CategorySkill},
				{ID: "edu2019", Category: models.CategoryEducation, StartDate: date(2019)},
				{ID: "award", Category: models.CategoryAward},
				{ID: "exp2019", Category: models.CategoryExperience, StartDate: date(2019)},
				{ID: "exp2021", Category: models.CategoryExperience, StartDate: date(2021)},
			}, nil
		},
	}
	svc := service.NewResumeService(repo)

	got, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"exp2021", "edu2019", "exp2019", "award", "skill"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List[%d] = %q; want %q", i, got[i].ID, id)
		}
	}
}

func TestResumeCreate_CategoryRules(t *testing.T) {
	tests := []struct {
		name    string
		item    models.ResumeItem
		wantErr bool
	}{
		{name: "skill without name", item: models.ResumeItem{Category: models.CategorySkill, SkillLevel: "Expert"}, wantErr: true},
		{name: "skill with name and level", item: models.ResumeItem{Category: models.CategorySkill, SkillName: "Go", SkillLevel: "Expert"}},
		{name: "experience without start", item: models.ResumeItem{Category: models.CategoryExperience, Title: "Dev", Organization: "Acme"}, wantErr: true},
		{name: "experience complete", item: models.ResumeItem{Category: models.CategoryExperience, Title: "Dev", Organization: "Acme", StartDate: date(2020)}},
		{name: "certification without url", item: models.ResumeItem{Category: models.CategoryCertification, Title: "CKA", Organization: "CNCF"}, wantErr: true},
		{name: "unknown category", item: models.ResumeItem{Category: "Hobby", Title: "Chess"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			repo := &mockResumeRepo{
				CreateResumeItemFunc: func(_ context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
					calls++
					item.ID = "r1"
					return &item, nil
				},
			}
			svc := service.NewResumeService(repo)

			_, err := svc.Create(context.Background(), tc.item)
			if tc.wantErr {
				if !apperr.Is(err, apperr.KindValidation) {
					t.Fatalf("Create error = %v; want validation", err)
				}
				if calls != 0 {
					t.Errorf("invalid item reached the store")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create error: %v", err)
			}
			if calls != 1 {
				t.Errorf("store calls = %d; want 1", calls)
			}
		})
	}
}

func TestResumeUpdate_RevalidatesChangedCategory(t *testing.T) {
	repo := &mockResumeRepo{
		GetResumeItemFunc: func(_ context.Context, id string) (*models.ResumeItem, error) {
			return &models.ResumeItem{ID: id, Category: models.CategoryAward, Title: "Prize", Organization: "Org"}, nil
		},
	}
	svc := service.NewResumeService(repo)

	_, err := svc.Update(context.Background(), "r1", func(item *models.ResumeItem) error {
		item.Category = models.CategorySkill
		return nil
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Update error = %v; want validation", err)
	}
}

func TestResumeUpdate_UnknownID(t *testing.T) {
	repo := &mockResumeRepo{
		GetResumeItemFunc: func(context.Context, string) (*models.ResumeItem, error) {
			return nil, apperr.NotFound("Resume item")
		},
	}
	svc := service.NewResumeService(repo)

	_, err := svc.Update(context.Background(), "nope", func(*models.ResumeItem) error { return nil })
	if apperr.Message(err) != "Resume item not found" {
		t.Fatalf("Update error = %v; want resume item not found", err)
	}
}

func TestResumeDelete(t *testing.T) {
	repo := &mockResumeRepo{
		DeleteResumeItemFunc: func(_ context.Context, id string) error {
			if id != "r1" {
				return apperr.NotFound("Resume item")
			}
			return nil
		},
	}
	svc := service.NewResumeService(repo)
	if err := svc.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := svc.Delete(context.Background(), "r2"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("Delete unknown = %v; want not found", err)
	}
}
