package workbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// SampleData is the content written by WriteSample. Tests and the
// sample-workbook command share it.
type SampleData struct {
	Transparency [][]interface{}
	BrandValue   [][]interface{}
	Behaviors    [][]interface{}
}

// DefaultSampleData returns a small data set shaped like the published file.
func DefaultSampleData() SampleData {
	return SampleData{
		Transparency: [][]interface{}{
			{"Brand", "Transparency_Index_2025"},
			{"H&M", 71},
			{"Zara", 52},
			{"Massimo Dutti", 48},
			{"Calzedonia", 34},
			{"Intimissimi", 33},
			{"Tezenis", 31},
			{"Primark", 47},
			{"Mango", 45},
			{"Benetton", 41},
		},
		BrandValue: [][]interface{}{
			{"Year", "Zara_BrandValue_USD_Million", "H&M_BrandValue_USD_Million"},
			{2010, 8065, 16136},
			{2011, 8455, 16459},
			{2012, 9488, 18168},
			{2013, 10821, 18175},
			{2014, 12126, 21083},
			{2015, 14031, 22222},
			{2016, 16766, 22681},
			{2017, 17712, 20488},
			{2018, 17712, 16826},
			{2019, 17175, 16345},
			{2020, 14089, 12919},
			{2021, 14065, 14133},
			{2022, 16936, 15097},
			{2023, 18423, 15643},
			{2024, 19384, 15247},
		},
		Behaviors: [][]interface{}{
			{"Behavior", "2022_%", "2024_%"},
			{"Buying second-hand clothes", 31, 38},
			{"Repairing clothes", 27, 29},
			{"Renting clothes", 6, 8},
			{"Buying from sustainable brands", 24, 21},
			{"Donating unwanted clothes", 58, 55},
			{"Reselling clothes online", 19, 24},
		},
	}
}

// WriteSample writes a workbook with the three expected sheets to path,
// creating parent directories as needed.
func WriteSample(path string, names SheetNames, data SampleData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{names.Transparency, data.Transparency},
		{names.BrandValue, data.BrandValue},
		{names.Behaviors, data.Behaviors},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("failed to rename sheet %q: %w", sheet.name, err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.name, err)
		}

		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			values := row
			if err := f.SetSheetRow(sheet.name, cell, &values); err != nil {
				return fmt.Errorf("failed to write sheet %q row %d: %w", sheet.name, r+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
