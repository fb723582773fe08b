/*
 * doc.go, part of moleview.
 *
 *
 * Copyright 2026 The moleview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

/*Package chem is the main package of moleview. It provides atom and molecule structures, facilities for reading and writing
the structure files used in computational chemistry and the geometric functions needed to display a molecule.



	**Capabilities**


    Reads/writes XYZ (including multi-XYZ) and PDB files, optionally
	compressed with gzip or zstd.

    Reads the Fortran exponent notation (1.0d-3, 1.0*^-3) that some
	quantum chemistry programs write in their XYZ files.

    Assigns bonds from interatomic distances and covalent radii, removing
	bonds from atoms that end up with more than their element allows.

    Calculates centroids, centers of mass, bounding boxes, moment tensors
	and principal axes.

    Obtains the Hill formula of a molecule.

The v3 subpackage contains the coordinate matrix, chemgraph the bond graph
analysis and chemplot the rendering of molecules.
*/
package chem
