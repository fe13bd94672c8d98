package tpchtestutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/tpch-parquet/tpch"
)

// FixtureLines holds a few dbgen rows per table, with the trailing delimiter dbgen writes.
var FixtureLines = map[tpch.TableName][]string{
	tpch.TableCustomer: {
		"1|Customer#000000001|IVhzIApeRb ot,c,E|15|25-989-741-2988|711.56|BUILDING|to the even, regular platelets. regular, ironic epitaphs nag e|",
		"2|Customer#000000002|XSTf4,NCwDVaWNe6tEgvwfmRchLXak|13|23-768-687-3665|121.65|AUTOMOBILE|l accounts. blithely ironic theodolites integrate boldly: caref|",
		"3|Customer#000000003|MG9kdTD2WBHm|1|11-719-748-3364|-272.60|AUTOMOBILE| deposits eat slyly ironic, even instructions. express foxes detect slyly.|",
	},
	tpch.TableLineitem: {
		"1|155190|7706|1|17|21168.23|0.04|0.02|N|O|1996-03-13|1996-02-12|1996-03-22|DELIVER IN PERSON|TRUCK|egular courts above the|",
		"1|67310|7311|2|36|45983.16|0.09|0.06|N|O|1996-04-12|1996-02-28|1996-04-20|TAKE BACK RETURN|MAIL|ly final dependencies: slyly bold |",
		"2|106170|1191|1|38|44694.46|0.00|0.05|N|O|1997-01-28|1997-01-14|1997-02-02|TAKE BACK RETURN|RAIL|ven requests. deposits breach a|",
	},
	tpch.TableNation: {
		"0|ALGERIA|0| haggle. carefully final deposits detect slyly agai|",
		"1|ARGENTINA|1|al foxes promise slyly according to the regular accounts. bold requests alon|",
	},
	tpch.TableOrders: {
		"1|36901|O|173665.47|1996-01-02|5-LOW|Clerk#000000951|0|nstructions sleep furiously among |",
		"2|78002|O|46929.18|1996-12-01|1-URGENT|Clerk#000000880|0| foxes. pending accounts at the pending, silent asymptot|",
	},
	tpch.TablePart: {
		"1|goldenrod lavender spring chocolate lace|Manufacturer#1|Brand#13|PROMO BURNISHED COPPER|7|JUMBO PKG|901.00|ly. slyly ironi|",
		"2|blush thistle blue yellow saddle|Manufacturer#1|Brand#13|LARGE BRUSHED BRASS|1|LG CASE|902.00|lar accounts amo|",
	},
	tpch.TablePartsupp: {
		"1|2|3325|771.64|, even theodolites. regular, final theodolites eat after the carefully pending foxes.|",
		"1|2502|8076|993.49|ven ideas. quickly even packages print. pending multipliers must have to are fluff|",
	},
	tpch.TableRegion: {
		"0|AFRICA|lar deposits. blithely|",
		"1|AMERICA|hs use ironic, even requests. s|",
		"2|ASIA|ges. thinly even pinto beans ca|",
	},
	tpch.TableSupplier: {
		"1|Supplier#000000001| N kD4on9OM Ipw3,gf0JBoQDd7tgrzrddZ|17|27-918-335-1736|5755.94|each slyly above the careful|",
		"2|Supplier#000000002|89eJ5ksX3ImxJQBvxObC,|5|15-679-861-2259|4032.68| slyly bold instructions. idle dependen|",
	},
}

func FixtureContents(table tpch.TableName) []byte {
	return []byte(strings.Join(FixtureLines[table], "\n") + "\n")
}

// WriteFixtures writes <dir>/<table>.csv for every table in the catalogue.
func WriteFixtures(fs gofs.Fs, dir string) errorsx.Error {
	for _, table := range tpch.Tables() {
		err := WriteFixture(fs, dir, table.Name, FixtureContents(table.Name))
		if err != nil {
			return errorsx.Wrap(err)
		}
	}
	return nil
}

func WriteFixture(fs gofs.Fs, dir string, table tpch.TableName, contents []byte) errorsx.Error {
	err := fs.MkdirAll(dir, 0755)
	if err != nil {
		return errorsx.Wrap(err, "path", dir)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.csv", table))
	err = fs.WriteFile(path, contents, 0644)
	if err != nil {
		return errorsx.Wrap(err, "path", path)
	}
	return nil
}
