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

//Package chemplot draws molecules with gonum/plot. A Scene is built from
//a molecule and a set of coordinates by projecting the atoms on the
//plane of the screen, either from a camera given by its elevation and
//azimuth or along the principal axes of the molecule. Atoms are drawn as
//discs in their CPK colors and bonds as sticks, each half in the color of
//its atom, from back to front.
package chemplot
