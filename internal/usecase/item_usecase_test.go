package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/internal/repository"
	"github.com/google/go-cmp/cmp"
)

func TestCreatePersistsNewItem(t *testing.T) {
	store := newFakeRecordStore()
	uc := newTestItemUsecase(store, mapHints{"你好": "nǐ hǎo"})
	ctx := context.Background()

	got, err := uc.Create(ctx, "  你好 ", " hello\n")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	want := entity.Item{ID: "id-1", SourceText: "你好", TargetText: "hello", PhoneticHint: "nǐ hǎo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("created item mismatch (-want +got):\n%s", diff)
	}

	list := uc.List(ctx)
	if diff := cmp.Diff([]entity.Item{want}, list); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	raw, _ := store.raw(repository.ItemsKey)
	if !strings.Contains(raw, `"sourceText":"你好"`) || !strings.Contains(raw, `"correctCount":0`) {
		t.Errorf("unexpected stored record %s", raw)
	}
}

func TestCreateRejectsBlankText(t *testing.T) {
	store := newFakeRecordStore()
	uc := newTestItemUsecase(store, nil)
	ctx := context.Background()

	for _, c := range [][2]string{{"", "hello"}, {"你好", "  "}, {"\t", "\n"}} {
		if _, err := uc.Create(ctx, c[0], c[1]); !errors.Is(err, entity.ErrInvalidItemText) {
			t.Errorf("Create(%q, %q) error = %v, want ErrInvalidItemText", c[0], c[1], err)
		}
	}
	if store.setCount() != 0 {
		t.Errorf("expected no writes, got %d", store.setCount())
	}
	if n := len(uc.List(ctx)); n != 0 {
		t.Errorf("expected empty collection, got %d items", n)
	}
}

func TestCreateNewItemHasZeroCounters(t *testing.T) {
	uc := NewItemUsecase(newFakeRecordStore(), nil, quietLogger())
	item, err := uc.Create(context.Background(), "你好", "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if item.ID == "" {
		t.Error("expected non-empty id")
	}
	if item.CorrectCount != 0 || item.IncorrectCount != 0 {
		t.Errorf("expected zero counters, got %d/%d", item.CorrectCount, item.IncorrectCount)
	}
}

func TestCreateKeepsInsertionOrder(t *testing.T) {
	uc := newTestItemUsecase(newFakeRecordStore(), nil)
	ctx := context.Background()
	for _, s := range []string{"一", "二", "三"} {
		if _, err := uc.Create(ctx, s, s+"-t"); err != nil {
			t.Fatalf("Create(%q): %v", s, err)
		}
	}
	var got []string
	for _, it := range uc.List(ctx) {
		got = append(got, it.SourceText)
	}
	if diff := cmp.Diff([]string{"一", "二", "三"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateSurvivesHintPanic(t *testing.T) {
	uc := newTestItemUsecase(newFakeRecordStore(), panicHints{})
	item, err := uc.Create(context.Background(), "你好", "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if item.PhoneticHint != "" {
		t.Errorf("expected empty hint, got %q", item.PhoneticHint)
	}
}

type panicHints struct{}

func (panicHints) Generate(string) string { panic("no dictionary") }

func TestNewItemID(t *testing.T) {
	now := time.UnixMilli(1735689600123)
	a, b := newItemID(now), newItemID(now)
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	for _, id := range []string{a, b} {
		if !strings.HasPrefix(id, "1735689600123") {
			t.Errorf("id %q missing millisecond prefix", id)
		}
		if len(id) != len("1735689600123")+idSuffixLen {
			t.Errorf("id %q has unexpected length %d", id, len(id))
		}
	}
}

func TestCreateBatch(t *testing.T) {
	store := newFakeRecordStore()
	uc := NewItemUsecase(store, nil, quietLogger())
	ctx := context.Background()

	created := uc.CreateBatch(ctx, []entity.ItemDraft{
		{SourceText: "你好", TargetText: "hello"},
		{SourceText: "谢谢", TargetText: "thanks"},
	})
	if len(created) != 2 {
		t.Fatalf("expected 2 created items, got %d", len(created))
	}
	if created[0].ID == created[1].ID {
		t.Errorf("expected unique ids, both %q", created[0].ID)
	}
	for _, it := range created {
		if it.CorrectCount != 0 || it.IncorrectCount != 0 {
			t.Errorf("item %s: expected zero counters", it.ID)
		}
	}
	if store.setCount() != 1 {
		t.Errorf("expected exactly one write, got %d", store.setCount())
	}
	if n := len(uc.List(ctx)); n != 2 {
		t.Errorf("expected 2 stored items, got %d", n)
	}
}

func TestCreateBatchSkipsInvalidEntries(t *testing.T) {
	store := newFakeRecordStore()
	uc := newTestItemUsecase(store, nil)
	ctx := context.Background()

	created := uc.CreateBatch(ctx, []entity.ItemDraft{
		{SourceText: " ", TargetText: "hello"},
		{SourceText: " 早 ", TargetText: " morning "},
		{SourceText: "晚", TargetText: ""},
	})
	if len(created) != 1 || created[0].SourceText != "早" || created[0].TargetText != "morning" {
		t.Fatalf("unexpected batch result %+v", created)
	}

	before := store.setCount()
	if got := uc.CreateBatch(ctx, []entity.ItemDraft{{SourceText: "", TargetText: ""}}); len(got) != 0 {
		t.Fatalf("expected nothing created, got %+v", got)
	}
	if got := uc.CreateBatch(ctx, nil); len(got) != 0 {
		t.Fatalf("expected nothing created, got %+v", got)
	}
	if store.setCount() != before {
		t.Errorf("expected no write for an all-invalid batch")
	}
}

func TestUpdate(t *testing.T) {
	uc := newTestItemUsecase(newFakeRecordStore(), mapHints{"你好": "nǐ hǎo", "您好": "nín hǎo"})
	ctx := context.Background()

	item, err := uc.Create(ctx, "你好", "hello")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	uc.RecordCorrect(ctx, item.ID)
	uc.RecordIncorrect(ctx, item.ID)
	uc.RecordIncorrect(ctx, item.ID)

	ok, err := uc.Update(ctx, item.ID, " 您好 ", " hello (polite) ")
	if err != nil || !ok {
		t.Fatalf("Update = %v, %v; want true, nil", ok, err)
	}

	got, found := uc.Get(ctx, item.ID)
	if !found {
		t.Fatal("updated item not found")
	}
	want := entity.Item{
		ID:             item.ID,
		SourceText:     "您好",
		TargetText:     "hello (polite)",
		PhoneticHint:   "nín hǎo",
		CorrectCount:   1,
		IncorrectCount: 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("updated item mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	store := newFakeRecordStore()
	uc := newTestItemUsecase(store, nil)
	ok, err := uc.Update(context.Background(), "missing-id", "x", "y")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if ok {
		t.Error("expected false for unknown id")
	}
	if store.setCount() != 0 {
		t.Errorf("expected no writes, got %d", store.setCount())
	}
}

func TestUpdateValidatesBeforeLookup(t *testing.T) {
	uc := newTestItemUsecase(newFakeRecordStore(), nil)
	ctx := context.Background()
	item, _ := uc.Create(ctx, "你好", "hello")

	if _, err := uc.Update(ctx, "missing-id", "", "y"); !errors.Is(err, entity.ErrInvalidItemText) {
		t.Errorf("expected ErrInvalidItemText for unknown id with blank text, got %v", err)
	}
	if _, err := uc.Update(ctx, item.ID, "你好", "   "); !errors.Is(err, entity.ErrInvalidItemText) {
		t.Errorf("expected ErrInvalidItemText, got %v", err)
	}
	got, _ := uc.Get(ctx, item.ID)
	if got.TargetText != "hello" {
		t.Errorf("rejected update modified item: %+v", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	uc := newTestItemUsecase(newFakeRecordStore(), nil)
	ctx := context.Background()
	a, _ := uc.Create(ctx, "一", "one")
	b, _ := uc.Create(ctx, "二", "two")

	if !uc.Delete(ctx, a.ID) {
		t.Fatal("first delete should succeed")
	}
	if uc.Delete(ctx, a.ID) {
		t.Error("second delete should report false")
	}
	if uc.Delete(ctx, "missing-id") {
		t.Error("deleting unknown id should report false")
	}
	list := uc.List(ctx)
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("unexpected remaining items %+v", list)
	}
}

func TestResetAllPersistsEmptyCollection(t *testing.T) {
	store := newFakeRecordStore()
	uc := newTestItemUsecase(store, nil)
	ctx := context.Background()
	_, _ = uc.Create(ctx, "一", "one")

	uc.ResetAll(ctx)
	if n := len(uc.List(ctx)); n != 0 {
		t.Errorf("expected empty list, got %d", n)
	}
	if raw, _ := store.raw(repository.ItemsKey); raw != "[]" {
		t.Errorf("expected stored empty array, got %q", raw)
	}
}

func TestListFailsSoft(t *testing.T) {
	ctx := context.Background()

	store := newFakeRecordStore()
	store.records[repository.ItemsKey] = []byte("{not json")
	uc := newTestItemUsecase(store, nil)
	if list := uc.List(ctx); list == nil || len(list) != 0 {
		t.Errorf("corrupt record: expected empty non-nil list, got %#v", list)
	}

	store = newFakeRecordStore()
	store.records[repository.ItemsKey] = []byte("null")
	uc = newTestItemUsecase(store, nil)
	if list := uc.List(ctx); list == nil || len(list) != 0 {
		t.Errorf("null record: expected empty non-nil list, got %#v", list)
	}

	store = newFakeRecordStore()
	store.failGet = true
	uc = newTestItemUsecase(store, nil)
	if list := uc.List(ctx); len(list) != 0 {
		t.Errorf("unreadable store: expected empty list, got %#v", list)
	}
}

func TestListDefaultsMissingCounters(t *testing.T) {
	store := newFakeRecordStore()
	store.records[repository.ItemsKey] = []byte(`[{"id":"1","sourceText":"你好","targetText":"hello"}]`)
	uc := newTestItemUsecase(store, nil)
	list := uc.List(context.Background())
	if len(list) != 1 || list[0].CorrectCount != 0 || list[0].IncorrectCount != 0 {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestWriteFailureIsSilent(t *testing.T) {
	store := newFakeRecordStore()
	store.failSet = true
	uc := newTestItemUsecase(store, nil)
	ctx := context.Background()

	item, err := uc.Create(ctx, "你好", "hello")
	if err != nil {
		t.Fatalf("Create returned error on failed write: %v", err)
	}
	if item.ID == "" {
		t.Error("expected item to be returned")
	}
	if n := len(uc.List(ctx)); n != 0 {
		t.Errorf("failed write should not persist, got %d items", n)
	}
}

func TestFind(t *testing.T) {
	uc := newTestItemUsecase(newFakeRecordStore(), nil)
	ctx := context.Background()
	a, _ := uc.Create(ctx, "你好", "hello")
	b, _ := uc.Create(ctx, "谢谢", "thanks")
	c, _ := uc.Create(ctx, "你们", "you (plural)")
	uc.RecordIncorrect(ctx, a.ID)
	uc.RecordIncorrect(ctx, a.ID)
	uc.RecordCorrect(ctx, b.ID)

	ids := func(items []entity.Item) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	cases := []struct {
		name  string
		query *repository.ListItemQuery
		want  []string
	}{
		{"nil query keeps insertion order", nil, []string{a.ID, b.ID, c.ID}},
		{"prefix filter", &repository.ListItemQuery{FilterOrder: repository.FilterOrder{Filter: "source.startsWith('你')"}}, []string{a.ID, c.ID}},
		{"struggling items", &repository.ListItemQuery{FilterOrder: repository.FilterOrder{Filter: "incorrect > correct"}}, []string{a.ID}},
		{"unseen items", &repository.ListItemQuery{FilterOrder: repository.FilterOrder{Filter: "attempts == 0"}}, []string{c.ID}},
		{"order by target desc", &repository.ListItemQuery{FilterOrder: repository.FilterOrder{OrderBy: "target desc"}}, []string{c.ID, b.ID, a.ID}},
		{"order by weight desc", &repository.ListItemQuery{FilterOrder: repository.FilterOrder{Filter: "attempts > 0", OrderBy: "weight desc"}}, []string{a.ID, b.ID}},
		{"success rate filter", &repository.ListItemQuery{FilterOrder: repository.FilterOrder{Filter: "success_rate >= 0.5"}}, []string{b.ID, c.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uc.Find(ctx, tc.query)
			if err != nil {
				t.Fatalf("Find returned error: %v", err)
			}
			if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindRejectsBadExpressions(t *testing.T) {
	uc := newTestItemUsecase(newFakeRecordStore(), nil)
	ctx := context.Background()
	for _, q := range []repository.FilterOrder{
		{Filter: "source + 1"},
		{Filter: "unknown == 1"},
		{OrderBy: "hint"},
		{OrderBy: "source sideways"},
	} {
		if _, err := uc.Find(ctx, &repository.ListItemQuery{FilterOrder: q}); err == nil {
			t.Errorf("expected error for %+v", q)
		}
	}
}

func TestReplace(t *testing.T) {
	store := newFakeRecordStore()
	uc := newTestItemUsecase(store, nil)
	ctx := context.Background()
	_, _ = uc.Create(ctx, "旧", "old")

	kept := uc.Replace(ctx, []entity.Item{
		{ID: "a", SourceText: " 你好 ", TargetText: "hello", CorrectCount: 3, IncorrectCount: 1},
		{ID: "b", SourceText: "", TargetText: "blank"},
		{ID: "a", SourceText: "dup", TargetText: "dup"},
		{ID: "c", SourceText: "谢谢", TargetText: "thanks", IncorrectCount: -1},
		{ID: "d", SourceText: "再见", TargetText: "bye", PhoneticHint: "zài jiàn"},
	})
	want := []entity.Item{
		{ID: "a", SourceText: "你好", TargetText: "hello", CorrectCount: 3, IncorrectCount: 1},
		{ID: "d", SourceText: "再见", TargetText: "bye", PhoneticHint: "zài jiàn"},
	}
	if diff := cmp.Diff(want, kept); diff != "" {
		t.Errorf("kept mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, uc.List(ctx)); diff != "" {
		t.Errorf("stored mismatch (-want +got):\n%s", diff)
	}
}
