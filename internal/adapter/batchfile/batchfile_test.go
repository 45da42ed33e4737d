package batchfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bazaarline/importer/internal/adapter/batchfile"
)

func TestParseCSV(t *testing.T) {
	t.Run("CanonicalHeaders", func(t *testing.T) {
		src := "name,price,stock\nکتاب گو,85000,3\nهدفون,450000,\n"

		rows, err := batchfile.Parse("products.csv", strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "کتاب گو", rows[0]["name"])
		assert.Equal(t, "85000", rows[0]["price"])
		assert.Equal(t, "3", rows[0]["stock"])
		assert.Equal(t, "", rows[1]["stock"])
	})

	t.Run("PersianHeadersMapped", func(t *testing.T) {
		src := "نام,قیمت,دسته بندی\nکیف چرمی,1200000,مد و پوشاک\n"

		rows, err := batchfile.Parse("کالاها.csv", strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, rows, 1)

		assert.Equal(t, "کیف چرمی", rows[0]["name"])
		assert.Equal(t, "1200000", rows[0]["price"])
		assert.Equal(t, "مد و پوشاک", rows[0]["category"])
	})

	t.Run("TemplateHeaders", func(t *testing.T) {
		src := "name,description,price,stock_quantity,category,image_url,sku,is_active\n" +
			"محصول نمونه 1,توضیحات محصول نمونه,150000,10,لوازم خانگی,https://example.com/image1.jpg,SAMPLE001,true\n"

		rows, err := batchfile.Parse("product_import_template.csv", strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, rows, 1)

		assert.Equal(t, "محصول نمونه 1", rows[0]["name"])
		assert.Equal(t, "10", rows[0]["stock"])
		assert.Equal(t, "SAMPLE001", rows[0]["sku"])
		assert.NotContains(t, rows[0], "stock_quantity")
	})

	t.Run("StripsUTF8BOM", func(t *testing.T) {
		src := "\xEF\xBB\xBFname,price\nساعت,500000\n"

		rows, err := batchfile.Parse("bom.csv", strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "ساعت", rows[0]["name"])
	})

	t.Run("SkipsBlankLines", func(t *testing.T) {
		src := "name,price\nکالا,1000\n,\nدیگری,2000\n"

		rows, err := batchfile.Parse("gaps.csv", strings.NewReader(src))
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		rows, err := batchfile.Parse("empty.csv", strings.NewReader("name,price\n"))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		_, err := batchfile.Parse("empty.csv", strings.NewReader(""))
		assert.ErrorIs(t, err, batchfile.ErrNoHeader)
	})
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"name", "price", "stock"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"لپ تاپ", 45000000, 2}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := batchfile.Parse("products.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "لپ تاپ", rows[0]["name"])
	assert.Equal(t, "45000000", rows[0]["price"])
	assert.Equal(t, "2", rows[0]["stock"])
}

func TestParseUnsupported(t *testing.T) {
	_, err := batchfile.Parse("products.xls", strings.NewReader("junk"))
	assert.ErrorIs(t, err, batchfile.ErrUnsupportedFormat)

	_, err = batchfile.Parse("products.pdf", strings.NewReader("junk"))
	assert.ErrorIs(t, err, batchfile.ErrUnsupportedFormat)
}
