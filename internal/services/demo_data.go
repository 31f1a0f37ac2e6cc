package services

import "statshell/internal/dataset"

// DemoDataset builds the built-in investment panel used when the shell starts
// with no data on disk: three firms observed over ten years.
func DemoDataset() *dataset.Dataset {
	firms := []string{"GM", "GE", "US Steel"}
	base := []struct {
		invest, mvalue, kstock float64
	}{
		{317.6, 3078.5, 2.8},
		{33.1, 1170.6, 97.8},
		{209.9, 1362.4, 53.8},
	}
	growth := []struct {
		invest, mvalue, kstock float64
	}{
		{36.2, 190.4, 48.4},
		{4.1, 42.1, 10.5},
		{15.3, 70.2, 21.9},
	}

	var firmCol []string
	var yearCol, investCol, mvalueCol, kstockCol []float64
	for i, firm := range firms {
		for t := 0; t < 10; t++ {
			firmCol = append(firmCol, firm)
			yearCol = append(yearCol, float64(1935+t))
			investCol = append(investCol, base[i].invest+growth[i].invest*float64(t))
			mvalueCol = append(mvalueCol, base[i].mvalue+growth[i].mvalue*float64(t))
			kstockCol = append(kstockCol, base[i].kstock+growth[i].kstock*float64(t))
		}
	}

	ds := dataset.New("investment")
	_ = ds.SetStrings("firm", firmCol)
	_ = ds.SetFloat("year", yearCol)
	_ = ds.SetFloat("invest", investCol)
	_ = ds.SetFloat("mvalue", mvalueCol)
	_ = ds.SetFloat("kstock", kstockCol)
	ds.SetLabel("invest", "Gross investment")
	ds.SetLabel("mvalue", "Market value of the firm")
	ds.SetLabel("kstock", "Capital stock")
	return ds
}
