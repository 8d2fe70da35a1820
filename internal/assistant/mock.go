package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const chatProfit = `Based on your current data, here are some strategies to increase profit:

1. **Optimize Pricing**: Your coffee products have a healthy margin. Consider a slight price increase on premium items.

2. **Reduce Low-Stock Items**: Products like Cheese Cake and Cargo Pants show low stock - either increase inventory or phase out.

3. **Bundle Products**: Create combo deals to increase average order value.

4. **Focus on High-Margin Items**: Your Tea category has lower costs - promote these more.`

const chatSales = `📊 **Sales Analysis Summary**

Your sales performance this month:
- Total Revenue: Rp 15.6M
- Best Performing: Coffee category (45% of sales)
- Growth Rate: +12.5% vs last month

**Recommendations:**
- Peak hours are 8-10 AM - consider morning promotions
- Weekend sales are 30% higher - optimize staffing`

const chatDefault = `I'm Bizness AI, your intelligent business assistant! I can help you with:

• Sales and profit analysis
• Inventory optimization
• Pricing strategies
• Business insights

Just ask me anything about your business!`

const pricingAdvice = `**Pricing Analysis**

Your request: %q

1. Add up every material, labor and overhead cost of one batch, then divide by the units produced to get your HPP.
2. A healthy margin for small food and retail businesses sits between 30%% and 50%% of the selling price.
3. Selling price = HPP / (1 - margin). At a 30%% margin, an HPP of Rp 10.000 sells for about Rp 14.286.
4. Review supplier prices monthly; material costs move faster than menu prices.`

// MockInvoker answers locally with canned responses chosen by keyword.
// Delay simulates processing latency and honours context cancellation.
type MockInvoker struct {
	Delay time.Duration
}

// Invoke returns the canned response for req.
func (m MockInvoker) Invoke(ctx context.Context, req Request) (Response, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()
		case <-timer.C:
		}
	}

	switch req.Endpoint {
	case EndpointPricing:
		return Response{Text: fmt.Sprintf(pricingAdvice, req.Input)}, nil
	case EndpointChat:
		return Response{Text: chatReply(req.Input)}, nil
	default:
		return Response{}, fmt.Errorf("assistant: unknown endpoint %q", req.Endpoint)
	}
}

func chatReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "profit"), strings.Contains(lower, "increase"):
		return chatProfit
	case strings.Contains(lower, "sales"), strings.Contains(lower, "analyze"):
		return chatSales
	default:
		return chatDefault
	}
}
