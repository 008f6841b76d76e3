// Package geodesy converts positions between geodetic datums and the
// Ordnance Survey National Grid of Great Britain.
//
// Datum shifts use seven parameter Helmert transforms applied to geocentric
// cartesian coordinates, always going through WGS84. National Grid
// coordinates are computed with the Redfearn transverse Mercator series on
// the Airy 1830 ellipsoid (OSGB36) and can be rendered as lettered grid
// references such as "TQ 44359 80653".
//
//	p := geodesy.NewLatLon(51.4778, -0.0016, geodesy.WGS84)
//	ref, err := p.ToGridRef()
//	fmt.Println(ref) // TQ 38876 77320
package geodesy
