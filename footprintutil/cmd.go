/*
Copyright © 2024 the raster-footprint authors.
This file is part of raster-footprint.

raster-footprint is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

raster-footprint is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with raster-footprint.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package footprintutil holds the commands and configuration of the
// raster-footprint command-line interface.
package footprintutil

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	footprint "github.com/pjhartzell/raster-footprint"
	"github.com/pjhartzell/raster-footprint/crs"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to
	// raster-footprint. Unset floating-point options default to NaN.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "outfile",
			usage: `
              outfile specifies the file to write the output geometry to.
              If empty, the geometry is written to standard output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets: []*pflag.FlagSet{createCmd.Flags(), densifyCmd.Flags(),
				reprojectCmd.Flags(), simplifyCmd.Flags()},
		},
		{
			name: "destination-crs",
			usage: `
              destination-crs specifies the coordinate reference system of the
              output footprint: an EPSG code such as EPSG:4326, a PROJ.4
              string, or WKT.`,
			defaultVal: crs.DefaultDestination,
			flagsets:   []*pflag.FlagSet{createCmd.Flags(), reprojectCmd.Flags()},
		},
		{
			name: "precision",
			usage: `
              precision specifies the number of decimal places to keep in
              footprint vertex coordinates.`,
			defaultVal: footprint.DefaultPrecision,
			flagsets:   []*pflag.FlagSet{createCmd.Flags(), reprojectCmd.Flags()},
		},
		{
			name: "nodata",
			usage: `
              nodata overrides the nodata value recorded in the raster. All
              raster bands must record the same nodata value for the override
              to apply.`,
			defaultVal: math.NaN(),
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "densify-factor",
			usage: `
              densify-factor multiplies the number of vertices along every
              footprint edge before reprojection. Mutually exclusive with
              densify-distance.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "densify-distance",
			usage: `
              densify-distance adds a vertex every given distance, in source
              CRS units, along footprint edges before reprojection. Mutually
              exclusive with densify-factor.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "simplify-tolerance",
			usage: `
              simplify-tolerance specifies the maximum distance, in
              destination CRS units, between the footprint and its simplified
              version.`,
			defaultVal: math.NaN(),
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "convex-hull",
			usage: `
              convex-hull replaces the footprint with its convex hull.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "holes",
			usage: `
              holes keeps interior rings in the footprint polygons.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "bands",
			usage: `
              bands specifies the raster band indices contributing to the
              footprint. When unset, all bands are ORd together: a pixel is
              outside the footprint only if every band holds nodata there.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "with-nodata",
			usage: `
              with-nodata computes the footprint of the entire raster grid,
              nodata pixels included.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "factor",
			usage: `
              factor multiplies the number of vertices along every geometry
              edge. Mutually exclusive with distance.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{densifyCmd.Flags()},
		},
		{
			name: "distance",
			usage: `
              distance adds a vertex every given distance, in geometry
              coordinate units, along geometry edges. Mutually exclusive with
              factor.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{densifyCmd.Flags()},
		},
		{
			name: "tolerance",
			usage: `
              tolerance specifies the maximum distance between the geometry
              and its simplified version, in geometry coordinate units.`,
			defaultVal: math.NaN(),
			flagsets:   []*pflag.FlagSet{simplifyCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RASTER_FOOTPRINT")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(createCmd)
	Root.AddCommand(densifyCmd)
	Root.AddCommand(reprojectCmd)
	Root.AddCommand(simplifyCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("raster-footprint: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "raster-footprint",
	Short: "Create and manipulate raster data footprints.",
	Long: `raster-footprint creates GeoJSON geometries surrounding the valid
data in a raster file, for use as spatial index geometries.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RASTER_FOOTPRINT_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of raster-footprint.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("raster-footprint v%s\n", footprint.Version)
	},
	DisableAutoGenTag: true,
}

var createCmd = &cobra.Command{
	Use:   "create [raster file]",
	Short: "Create a raster footprint",
	Long: `create builds a GeoJSON footprint surrounding the valid data in the
given raster file. A raster with no valid pixels yields a null geometry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &footprint.Options{
			DestinationCRS:    Cfg.GetString("destination-crs"),
			Precision:         Cfg.GetInt("precision"),
			DensifyFactor:     Cfg.GetInt("densify-factor"),
			DensifyDistance:   Cfg.GetFloat64("densify-distance"),
			SimplifyTolerance: optionalFloat(Cfg.GetFloat64("simplify-tolerance")),
			ConvexHull:        Cfg.GetBool("convex-hull"),
			Holes:             Cfg.GetBool("holes"),
			Bands:             Cfg.GetIntSlice("bands"),
			Nodata:            optionalFloat(Cfg.GetFloat64("nodata")),
			WithNodata:        Cfg.GetBool("with-nodata"),
		}
		log.WithField("file", args[0]).Info("creating footprint")
		g, err := footprint.FootprintFromFile(args[0], opts)
		if err != nil {
			return err
		}
		if g == nil {
			log.WithField("file", args[0]).Warn("raster has no valid data; writing a null geometry")
		}
		return output(g, Cfg.GetString("outfile"))
	},
	DisableAutoGenTag: true,
}

var densifyCmd = &cobra.Command{
	Use:   "densify [GeoJSON file]",
	Short: "Densify a Polygon or MultiPolygon",
	Long: `densify adds vertices to a GeoJSON polygon or multipolygon, either
multiplying the vertex count of every edge (--factor) or adding a vertex at a
fixed spacing (--distance). Exactly one of the two must be given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		factor := Cfg.GetInt("factor")
		distance := Cfg.GetFloat64("distance")
		if factor == 0 && distance == 0 {
			return fmt.Errorf("raster-footprint: one of --factor or --distance is required")
		}
		g, err := readGeometry(args[0])
		if err != nil {
			return err
		}
		densified, err := footprint.Densify(g, factor, distance)
		if err != nil {
			return err
		}
		return output(footprint.NewGeometry(densified), Cfg.GetString("outfile"))
	},
	DisableAutoGenTag: true,
}

var reprojectCmd = &cobra.Command{
	Use:   "reproject [GeoJSON file] [source CRS]",
	Short: "Reproject a Polygon or MultiPolygon",
	Long: `reproject maps a GeoJSON polygon or multipolygon from the given
source CRS to the destination CRS, rounding coordinates to the configured
precision. CRS arguments may be EPSG codes such as EPSG:32631, PROJ.4
strings, or WKT.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGeometry(args[0])
		if err != nil {
			return err
		}
		src, err := crs.Parse(args[1])
		if err != nil {
			return err
		}
		dst, err := crs.Parse(Cfg.GetString("destination-crs"))
		if err != nil {
			return err
		}
		reprojected, err := footprint.Reproject(g, src, dst, Cfg.GetInt("precision"))
		if err != nil {
			return err
		}
		return output(footprint.NewGeometry(reprojected), Cfg.GetString("outfile"))
	},
	DisableAutoGenTag: true,
}

var simplifyCmd = &cobra.Command{
	Use:   "simplify [GeoJSON file]",
	Short: "Simplify a Polygon or MultiPolygon",
	Long: `simplify reduces the vertex count of a GeoJSON polygon or
multipolygon so that no removed vertex is further than --tolerance from the
simplified geometry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGeometry(args[0])
		if err != nil {
			return err
		}
		simplified := footprint.Simplify(g, optionalFloat(Cfg.GetFloat64("tolerance")))
		return output(footprint.NewGeometry(simplified), Cfg.GetString("outfile"))
	},
	DisableAutoGenTag: true,
}

// optionalFloat converts the NaN "unset" flag default to a nil pointer.
func optionalFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// readGeometry reads a GeoJSON polygon or multipolygon from a file.
func readGeometry(path string) (geom.Polygonal, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return footprint.DecodeGeometry(b)
}

// output writes a geometry as indented GeoJSON to outfile, creating
// parent directories as needed, or to standard output when outfile is
// empty. A nil geometry is written as null.
func output(g *footprint.Geometry, outfile string) error {
	b, err := json.MarshalIndent(g, "", "    ")
	if err != nil {
		return err
	}
	if outfile == "" {
		fmt.Println(string(b))
		return nil
	}
	if dir := filepath.Dir(outfile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(outfile, append(b, '\n'), 0644)
}
