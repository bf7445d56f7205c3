package pagination

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/contribwall/pkg/errors"
)

func TestParseLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Hint
	}{
		{
			name: "next and last",
			header: `<https://api.github.com/repos/o/r/contributors?per_page=100&page=2>; rel="next", ` +
				`<https://api.github.com/repos/o/r/contributors?per_page=100&page=9>; rel="last"`,
			want: Hint{Next: 2, Last: 9},
		},
		{
			name: "last page reached",
			header: `<https://api.github.com/repos/o/r/contributors?page=8>; rel="prev", ` +
				`<https://api.github.com/repos/o/r/contributors?page=1>; rel="first"`,
			want: Hint{},
		},
		{name: "empty header", header: "", want: Hint{}},
		{name: "garbage", header: "not a link header", want: Hint{}},
		{
			name:   "missing page param",
			header: `<https://api.github.com/repositories?since=364>; rel="next"`,
			want:   Hint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLink(tt.header); got != tt.want {
				t.Errorf("ParseLink = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHintHasMore(t *testing.T) {
	if (Hint{}).HasMore() {
		t.Error("zero Hint should have no more pages")
	}
	if !(Hint{Next: 2, Last: 5}).HasMore() {
		t.Error("Hint with next should have more pages")
	}
}

// fakeListing simulates a listing split across pages, with a random delay per
// fetch so completion order differs from page order.
func fakeListing(pages int, perPage int) FetchFunc[string] {
	return func(ctx context.Context, page int) ([]string, Hint, error) {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		if page > pages {
			return nil, Hint{}, fmt.Errorf("page %d out of range", page)
		}
		items := make([]string, perPage)
		for i := range items {
			items[i] = fmt.Sprintf("p%d-i%d", page, i)
		}
		hint := Hint{}
		if page < pages {
			hint = Hint{Next: page + 1, Last: pages}
		}
		return items, hint, nil
	}
}

func TestAllSinglePage(t *testing.T) {
	got, err := All(context.Background(), fakeListing(1, 3), 4)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	want := []string{"p1-i0", "p1-i1", "p1-i2"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAllConcatenatesInPageOrder(t *testing.T) {
	const pages, perPage = 7, 5
	got, err := All(context.Background(), fakeListing(pages, perPage), 3)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(got) != pages*perPage {
		t.Fatalf("len = %d, want %d", len(got), pages*perPage)
	}
	for i, item := range got {
		want := fmt.Sprintf("p%d-i%d", i/perPage+1, i%perPage)
		if item != want {
			t.Fatalf("item %d = %q, want %q (page order must survive concurrent fetches)", i, item, want)
		}
	}
}

func TestAllDiscardsPartialResultsOnFailure(t *testing.T) {
	boom := stderrors.New("boom")
	fetch := func(ctx context.Context, page int) ([]int, Hint, error) {
		if page == 3 {
			return nil, Hint{}, boom
		}
		hint := Hint{}
		if page == 1 {
			hint = Hint{Next: 2, Last: 4}
		}
		return []int{page}, hint, nil
	}

	got, err := All(context.Background(), fetch, 2)
	if err == nil {
		t.Fatal("All should fail when any page fails")
	}
	if got != nil {
		t.Errorf("partial results must be discarded, got %v", got)
	}
	if !errors.Is(err, errors.ErrCodePagination) {
		t.Errorf("error code = %q, want PAGINATION_FAILED", errors.GetCode(err))
	}
	if !stderrors.Is(err, boom) {
		t.Errorf("error should wrap the page failure, got %v", err)
	}
}

func TestAllFirstPageFailure(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]int, Hint, error) {
		return nil, Hint{}, stderrors.New("listing unavailable")
	}
	_, err := All(context.Background(), fetch, 2)
	if !errors.Is(err, errors.ErrCodePagination) {
		t.Errorf("error code = %q, want PAGINATION_FAILED", errors.GetCode(err))
	}
}

func TestAllRespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	fetch := func(ctx context.Context, page int) ([]int, Hint, error) {
		if page == 1 {
			return []int{1}, Hint{Next: 2, Last: 12}, nil
		}
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return []int{page}, Hint{}, nil
	}

	if _, err := All(context.Background(), fetch, 3); err != nil {
		t.Fatalf("All error: %v", err)
	}
	if p := peak.Load(); p > 3 {
		t.Errorf("peak in-flight fetches = %d, want <= 3", p)
	}
}

func TestAllNextWithoutLast(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]int, Hint, error) {
		switch page {
		case 1:
			return []int{1}, Hint{Next: 2}, nil
		case 2:
			return []int{2}, Hint{}, nil
		default:
			return nil, Hint{}, fmt.Errorf("unexpected page %d", page)
		}
	}
	got, err := All(context.Background(), fetch, 2)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("All = %v, want [1 2]", got)
	}
}
