package portfolio

import (
	"testing"

	"github.com/mtlprog/cexstat/internal/domain"
)

func TestDCATimelineTwoBuys(t *testing.T) {
	unified := Unify("BTC", "BTCUSDT", []domain.RawTrade{
		{ID: 2, Price: "300", Qty: "1", QuoteQty: "300", Time: 2000, IsBuyer: true},
		{ID: 1, Price: "100", Qty: "1", QuoteQty: "100", Time: 1000, IsBuyer: true},
	}, nil, nil)

	timeline := DCATimeline(unified)
	if len(timeline) != 2 {
		t.Fatalf("len = %d, want 2", len(timeline))
	}

	assertDecimal(t, "timeline[0].TotalQty", timeline[0].TotalQty, "1")
	assertDecimal(t, "timeline[0].TotalInvested", timeline[0].TotalInvested, "100")
	assertDecimal(t, "timeline[0].AvgCost", timeline[0].AvgCost, "100")
	if timeline[0].Date != 1000 {
		t.Errorf("timeline[0].Date = %d, want 1000", timeline[0].Date)
	}

	assertDecimal(t, "timeline[1].TotalQty", timeline[1].TotalQty, "2")
	assertDecimal(t, "timeline[1].TotalInvested", timeline[1].TotalInvested, "400")
	assertDecimal(t, "timeline[1].AvgCost", timeline[1].AvgCost, "200")
}

func TestDCATimelineSpotBuysOnly(t *testing.T) {
	unified := Unify("BTC", "BTCUSDT",
		[]domain.RawTrade{
			{ID: 1, Price: "100", Qty: "1", QuoteQty: "100", Time: 1000, IsBuyer: true},
			{ID: 2, Price: "500", Qty: "1", QuoteQty: "500", Time: 3000, IsBuyer: false},
		},
		[]domain.RawAutoInvestTransaction{
			{ID: 3, SourceAssetAmount: "50", TargetAssetAmount: "1", ExecutionPrice: "50", TransactionDateTime: 2000, TransactionStatus: "SUCCESS"},
		},
		[]domain.RawDividend{{ID: 4, Amount: "0.1", DivTime: 4000}},
	)

	timeline := DCATimeline(unified)
	if len(timeline) != 1 {
		t.Fatalf("len = %d, want 1 (sells, auto-invest and rewards excluded)", len(timeline))
	}
	assertDecimal(t, "AvgCost", timeline[0].AvgCost, "100")
}

func TestDCATimelineNoBuys(t *testing.T) {
	unified := Unify("BTC", "BTCUSDT", nil, nil, []domain.RawDividend{{ID: 1, Amount: "1", DivTime: 1}})
	if got := DCATimeline(unified); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if got := SummarizeDCA(unified, nil); got != nil {
		t.Errorf("SummarizeDCA = %+v, want nil", got)
	}
}

func TestDCATimelineMonotonic(t *testing.T) {
	trades := []domain.RawTrade{
		{ID: 1, Price: "40000", Qty: "0.002", QuoteQty: "80", Time: 100, IsBuyer: true},
		{ID: 2, Price: "20000", Qty: "0.005", QuoteQty: "100", Time: 300, IsBuyer: true},
		{ID: 3, Price: "60000", Qty: "0.001", QuoteQty: "60", Time: 200, IsBuyer: true},
		{ID: 4, Price: "25000", Qty: "0.004", QuoteQty: "100", Time: 400, IsBuyer: true},
	}
	timeline := DCATimeline(Unify("BTC", "BTCUSDT", trades, nil, nil))

	for i := 1; i < len(timeline); i++ {
		prev, cur := timeline[i-1], timeline[i]
		if cur.Date < prev.Date {
			t.Errorf("timeline not chronological at %d", i)
		}
		if cur.TotalQty.LessThan(prev.TotalQty) {
			t.Errorf("TotalQty decreased at %d: %s < %s", i, cur.TotalQty, prev.TotalQty)
		}
		if cur.TotalInvested.LessThan(prev.TotalInvested) {
			t.Errorf("TotalInvested decreased at %d: %s < %s", i, cur.TotalInvested, prev.TotalInvested)
		}
		if !cur.AvgCost.Equal(cur.TotalInvested.Div(cur.TotalQty)) {
			t.Errorf("AvgCost at %d = %s, want invested/qty", i, cur.AvgCost)
		}
	}
}

func TestSummarizeDCA(t *testing.T) {
	unified := Unify("ETH", "ETHUSDT", []domain.RawTrade{
		{ID: 1, Price: "2000", Qty: "1", QuoteQty: "2000", Time: 1000, IsBuyer: true},
		{ID: 2, Price: "1500", Qty: "2", QuoteQty: "3000", Time: 2000, IsBuyer: true},
		{ID: 3, Price: "2500", Qty: "1", QuoteQty: "2500", Time: 3000, IsBuyer: true},
	}, nil, nil)
	timeline := DCATimeline(unified)

	s := SummarizeDCA(unified, timeline)
	if s == nil {
		t.Fatal("expected summary, got nil")
	}
	if s.NumBuys != 3 {
		t.Errorf("NumBuys = %d, want 3", s.NumBuys)
	}
	assertDecimal(t, "TotalInvested", s.TotalInvested, "7500")
	assertDecimal(t, "TotalQty", s.TotalQty, "4")
	assertDecimal(t, "AvgCost", s.AvgCost, "1875")
	assertDecimal(t, "LowPrice", s.LowPrice, "1500")
	assertDecimal(t, "HighPrice", s.HighPrice, "2500")
	if s.FirstBuyDate != 1000 || s.LastBuyDate != 3000 {
		t.Errorf("dates = %d..%d, want 1000..3000", s.FirstBuyDate, s.LastBuyDate)
	}
}

func TestChartPointsDeduplicatesPerSecond(t *testing.T) {
	timeline := []domain.DcaPoint{
		{Date: 1000, AvgCost: d("100")},
		{Date: 1500, AvgCost: d("150")},
		{Date: 3000, AvgCost: d("120")},
	}

	points := ChartPoints(timeline)
	if len(points) != 2 {
		t.Fatalf("len = %d, want 2", len(points))
	}
	if points[0].Time != 1 || !points[0].Value.Equal(d("150")) {
		t.Errorf("points[0] = %+v, want {1 150}", points[0])
	}
	if points[1].Time != 3 {
		t.Errorf("points[1].Time = %d, want 3", points[1].Time)
	}
}
