// marketctl prints the product catalog, the current price trends and the
// known mandis as terminal tables, for quick operator checks without curl.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"openmandi/pricing"
)

func main() {
	color.Bold.Println("OpenMandi market reference")
	fmt.Println()

	printProducts()
	fmt.Println()
	printTrends()
	fmt.Println()
	printMarkets()
}

func printProducts() {
	color.Bold.Println("Products")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Product", "Category", "Hindi", "Season"})
	for _, p := range pricing.Products() {
		months := lo.Map(p.SeasonalAvailability, func(m time.Month, _ int) string {
			return m.String()[:3]
		})
		table.Append([]string{p.Name, p.Category, p.RegionalNames["hi"], strings.Join(months, " ")})
	}
	table.Render()
}

func printTrends() {
	color.Bold.Println("Current price trends (INR per quintal)")
	trends := pricing.CurrentTrends()
	names := lo.Keys(trends)
	sort.Strings(names)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Product", "Price", "Trend"})
	for _, name := range names {
		trend := trends[name]
		table.Append([]string{name, fmt.Sprintf("%.2f", trend.CurrentPrice), trendLabel(trend)})
	}
	table.Render()
}

func printMarkets() {
	color.Bold.Println("Major mandis")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Market", "State", "District"})
	for _, m := range pricing.Markets() {
		table.Append([]string{m.Name, m.State, m.District})
	}
	table.Render()
}

func trendLabel(t pricing.PriceTrend) string {
	label := t.TrendSymbol + " " + t.Trend
	switch t.Trend {
	case "up":
		return color.Green.Sprint(label)
	case "down":
		return color.Red.Sprint(label)
	default:
		return color.Yellow.Sprint(label)
	}
}
